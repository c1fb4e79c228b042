package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/provtrack/bidwatch/internal/model"
)

func sampleRegister() model.ContractRegister {
	contractor := "ABC Builders"
	cost := 1450000.50
	return model.ContractRegister{
		GeneratedAt: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		Rows: []model.RegisterRow{
			{
				Contract: model.Contract{
					IDNo:           "PR-2024-01",
					Title:          "Road Widening",
					ApprovedBudget: 1500000,
					Contractor:     &contractor,
					ContractCost:   &cost,
				},
				CurrentStatus: &model.ProjectStatus{StatusName: "Awarded"},
				ProjectEngineers: []model.Engineer{
					{FirstName: "Maria", LastName: "Santos"},
				},
			},
			{
				Contract: model.Contract{
					IDNo:           "PR-2024-02",
					Title:          "Drainage Works",
					ApprovedBudget: 800000,
				},
			},
		},
	}
}

func TestGenerateWorkbook(t *testing.T) {
	content, err := NewGenerator().Generate(sampleRegister())
	require.NoError(t, err)
	require.NotEmpty(t, content)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	assert.Contains(t, sheets, "Register")
	assert.Contains(t, sheets, "PR-2024-01")
	assert.Contains(t, sheets, "PR-2024-02")

	idNo, err := file.GetCellValue("Register", "A6")
	require.NoError(t, err)
	assert.Equal(t, "PR-2024-01", idNo)

	status, err := file.GetCellValue("Register", "F6")
	require.NoError(t, err)
	assert.Equal(t, "Awarded", status)

	engineers, err := file.GetCellValue("Register", "G6")
	require.NoError(t, err)
	assert.Equal(t, "Santos, Maria", engineers)

	// Missing values render as a dash, never blank.
	contractor, err := file.GetCellValue("Register", "C7")
	require.NoError(t, err)
	assert.Equal(t, "-", contractor)
}

func TestGenerateEmptyRegister(t *testing.T) {
	content, err := NewGenerator().Generate(model.ContractRegister{
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, []string{"Register"}, file.GetSheetList())
}

func TestBuildSheetName(t *testing.T) {
	used := map[string]struct{}{}

	name := buildSheetName("PR-2024-01", used)
	assert.Equal(t, "PR-2024-01", name)
	used[name] = struct{}{}

	// Duplicates get a numeric suffix.
	name = buildSheetName("PR-2024-01", used)
	assert.Equal(t, "PR-2024-01-2", name)
	used[name] = struct{}{}

	// Illegal characters are replaced, names stay within the cap.
	name = buildSheetName("PR/2024*01[very long identifier]", used)
	assert.LessOrEqual(t, len(name), 31)
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "*")

	assert.Equal(t, "contract", buildSheetName("", used))
}
