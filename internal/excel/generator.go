package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/provtrack/bidwatch/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes the contract register as a workbook: a summary sheet
// followed by one detail sheet per contract.
func (g *Generator) Generate(register model.ContractRegister) ([]byte, error) {
	file := excelize.NewFile()

	registerSheet := "Register"
	file.SetSheetName("Sheet1", registerSheet)
	if err := g.writeRegister(file, registerSheet, register); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{registerSheet: {}}
	for _, row := range register.Rows {
		sheetName := buildSheetName(row.Contract.IDNo, usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeDetail(file, sheetName, row); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var registerHeaders = []string{
	"ID No", "Title", "Contractor", "Approved Budget", "Contract Cost",
	"Current Status", "Project Engineers", "Project Inspectors",
	"Opening of Bids", "Contract Start", "Contract End", "Re-advertised",
}

func (g *Generator) writeRegister(file *excelize.File, sheet string, register model.ContractRegister) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Contract register")
	set("A2", "Generated")
	set("B2", register.GeneratedAt.Format("2006-01-02 15:04"))
	set("A3", "Contracts")
	set("B3", len(register.Rows))

	headerRow := 5
	for i, header := range registerHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return err
		}
		set(cell, header)
	}

	for i, row := range register.Rows {
		values := []interface{}{
			row.Contract.IDNo,
			row.Contract.Title,
			stringOrDash(row.Contract.Contractor),
			row.Contract.ApprovedBudget,
			amountOrDash(row.Contract.ContractCost),
			statusOrDash(row.CurrentStatus),
			joinEngineers(row.ProjectEngineers),
			joinEngineers(row.ProjectInspectors),
			dateTimeOrDash(row.Contract.OpeningOfBidsDate),
			dateOrDash(row.Contract.ContractStartDate),
			dateOrDash(row.Contract.ContractEndDate),
			row.Contract.ReAdvertised,
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, headerRow+1+i)
			if err != nil {
				return err
			}
			set(cell, value)
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "B", 45)
	_ = file.SetColWidth(sheet, "C", "H", 24)
	_ = file.SetColWidth(sheet, "I", "K", 16)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, row model.RegisterRow) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	c := row.Contract
	pairs := []struct {
		label string
		value interface{}
	}{
		{"ID No", c.IDNo},
		{"Title", c.Title},
		{"Description", stringOrDash(c.Description)},
		{"Program Amount", amountOrDash(c.ProgramAmount)},
		{"Approved Budget", c.ApprovedBudget},
		{"Contract Cost", amountOrDash(c.ContractCost)},
		{"Contractor", stringOrDash(c.Contractor)},
		{"Pre-bid Date", dateTimeOrDash(c.PreBidDate)},
		{"Opening of Bids", dateTimeOrDash(c.OpeningOfBidsDate)},
		{"Start of Posting", dateOrDash(c.StartOfPostingDate)},
		{"End of Posting", dateOrDash(c.EndOfPostingDate)},
		{"Contract Start", dateOrDash(c.ContractStartDate)},
		{"Contract End", dateOrDash(c.ContractEndDate)},
		{"Completion", dateOrDash(c.CompletionDate)},
		{"Current Status", statusOrDash(row.CurrentStatus)},
		{"Project Engineers", joinEngineers(row.ProjectEngineers)},
		{"Project Inspectors", joinEngineers(row.ProjectInspectors)},
		{"Remarks", stringOrDash(c.Remarks)},
		{"Re-advertised", c.ReAdvertised},
		{"Status Code", c.Status},
	}

	for i, pair := range pairs {
		set(fmt.Sprintf("A%d", i+1), pair.label)
		set(fmt.Sprintf("B%d", i+1), pair.value)
	}

	_ = file.SetColWidth(sheet, "A", "A", 22)
	_ = file.SetColWidth(sheet, "B", "B", 60)
	return nil
}

// Sheet names are capped at 31 characters by the xlsx format and must
// be unique within the workbook.
func buildSheetName(idNo string, used map[string]struct{}) string {
	base := sanitizeSheetName(idNo)
	if base == "" {
		base = "contract"
	}
	if len(base) > 28 {
		base = base[:28]
	}

	name := base
	for i := 2; ; i++ {
		if _, taken := used[name]; !taken {
			return name
		}
		name = fmt.Sprintf("%s-%d", base, i)
	}
}

func sanitizeSheetName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_', r == ' ':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "- ")
}

func joinEngineers(engineers []model.Engineer) string {
	if len(engineers) == 0 {
		return "-"
	}
	names := make([]string, 0, len(engineers))
	for i := range engineers {
		names = append(names, engineers[i].FullName())
	}
	return strings.Join(names, "; ")
}

func stringOrDash(value *string) string {
	if value == nil || *value == "" {
		return "-"
	}
	return *value
}

func amountOrDash(value *float64) interface{} {
	if value == nil {
		return "-"
	}
	return *value
}

func statusOrDash(status *model.ProjectStatus) string {
	if status == nil {
		return "-"
	}
	return status.StatusName
}

func dateOrDash(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return value.Format("2006-01-02")
}

func dateTimeOrDash(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return value.Format("2006-01-02 15:04")
}
