package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/provtrack/bidwatch/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() (*Generator, error) {
	return &Generator{fontName: "Helvetica"}, nil
}

// Generate renders a one-page contract summary sheet.
func (g *Generator) Generate(row model.RegisterRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	c := row.Contract

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Contract Summary", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Contract No. %s", c.IDNo), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, c.Title, "", 1, "L", false, 0, "")
	if c.Description != nil && *c.Description != "" {
		pdf.SetFont(g.fontName, "", 10)
		pdf.MultiCell(0, 5, *c.Description, "", "L", false)
	}
	pdf.Ln(2)

	g.section(pdf, "Budget")
	g.row(pdf, "Program Amount", amountText(c.ProgramAmount))
	g.row(pdf, "Approved Budget", formatAmount(c.ApprovedBudget))
	g.row(pdf, "Contract Cost", amountText(c.ContractCost))
	g.row(pdf, "Contractor", textOrNone(c.Contractor))
	pdf.Ln(2)

	g.section(pdf, "Schedule")
	g.row(pdf, "Pre-bid Conference", dateTimeText(c.PreBidDate))
	g.row(pdf, "Opening of Bids", dateTimeText(c.OpeningOfBidsDate))
	g.row(pdf, "Posting Period", periodText(c.StartOfPostingDate, c.EndOfPostingDate))
	g.row(pdf, "Contract Period", periodText(c.ContractStartDate, c.ContractEndDate))
	g.row(pdf, "Completion", dateText(c.CompletionDate))
	pdf.Ln(2)

	g.section(pdf, "Assignment")
	g.row(pdf, "Project Engineers", engineerText(row.ProjectEngineers))
	g.row(pdf, "Project Inspectors", engineerText(row.ProjectInspectors))
	g.row(pdf, "Current Status", statusText(row.CurrentStatus))
	g.row(pdf, "Status Code", strconv.Itoa(c.Status))
	g.row(pdf, "Re-advertised", boolText(c.ReAdvertised))
	if c.Remarks != nil && *c.Remarks != "" {
		g.row(pdf, "Remarks", *c.Remarks)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
}

func (g *Generator) row(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(55, 6, label, "", 0, "L", false, 0, "")
	pdf.MultiCell(0, 6, value, "", "L", false)
}

func formatAmount(value float64) string {
	fixed := strconv.FormatFloat(value, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)
	return strings.Join(groups, ",") + "." + fracPart
}

func amountText(value *float64) string {
	if value == nil {
		return "none"
	}
	return formatAmount(*value)
}

func textOrNone(value *string) string {
	if value == nil || *value == "" {
		return "none"
	}
	return *value
}

func dateText(value *time.Time) string {
	if value == nil {
		return "none"
	}
	return value.Format("02 Jan 2006")
}

func dateTimeText(value *time.Time) string {
	if value == nil {
		return "none"
	}
	return value.Format("02 Jan 2006 15:04")
}

func periodText(start, end *time.Time) string {
	return fmt.Sprintf("%s to %s", dateText(start), dateText(end))
}

func engineerText(engineers []model.Engineer) string {
	if len(engineers) == 0 {
		return "unassigned"
	}
	names := make([]string, 0, len(engineers))
	for i := range engineers {
		names = append(names, engineers[i].FullName())
	}
	return strings.Join(names, "; ")
}

func statusText(status *model.ProjectStatus) string {
	if status == nil {
		return "none"
	}
	return status.StatusName
}

func boolText(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
