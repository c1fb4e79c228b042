package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provtrack/bidwatch/internal/model"
)

func TestGenerateSummary(t *testing.T) {
	gen, err := NewGenerator()
	require.NoError(t, err)

	description := "Widening of the coastal road"
	cost := 1450000.50
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	content, err := gen.Generate(model.RegisterRow{
		Contract: model.Contract{
			IDNo:              "PR-2024-01",
			Title:             "Road Widening",
			Description:       &description,
			ApprovedBudget:    1500000,
			ContractCost:      &cost,
			ContractStartDate: &start,
			Status:            3,
		},
		CurrentStatus: &model.ProjectStatus{StatusName: "Awarded"},
		ProjectEngineers: []model.Engineer{
			{FirstName: "Maria", LastName: "Santos"},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestGenerateMinimalContract(t *testing.T) {
	gen, err := NewGenerator()
	require.NoError(t, err)

	content, err := gen.Generate(model.RegisterRow{
		Contract: model.Contract{IDNo: "PR-2024-02", Title: "Drainage Works"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999, "999.00"},
		{1500000, "1,500,000.00"},
		{1450000.5, "1,450,000.50"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatAmount(tc.in), "input %v", tc.in)
	}
}
