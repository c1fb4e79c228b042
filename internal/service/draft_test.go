package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() ContractDraft {
	return ContractDraft{
		IDNo:           "PR-2024-01",
		Title:          "Road Widening",
		ApprovedBudget: "1500000.00",
		Status:         "0",
	}
}

func TestValidateDraft_Valid(t *testing.T) {
	errs := ValidateDraft(validDraft())
	assert.Empty(t, errs)
}

func TestValidateDraft_RequiredFields(t *testing.T) {
	errs := ValidateDraft(ContractDraft{Status: "0"})
	assert.Contains(t, errs, "id_no")
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "approved_budget")
}

func TestValidateDraft_IDNoLength(t *testing.T) {
	cases := []struct {
		idNo string
		ok   bool
	}{
		{"SHORT", false},
		{"0123456789", true},
		{"ABCDEFGHIJ", true},
		{"##########", true}, // character class does not matter
		{"ÑÑÑÑÑÑÑÑÑÑ", true}, // 10 characters, 20 bytes
		{"契約番号一二三四五六七", false}, // 11 characters
		{"契約番号一二三四五六", true},   // 10 characters, 30 bytes
		{"ÑÑÑÑÑ", false},
		{"0123456789X", false},
		{"  PR-2024-01  ", true}, // trims to 10
		{"", false},
	}
	for _, tc := range cases {
		draft := validDraft()
		draft.IDNo = tc.idNo
		errs := ValidateDraft(draft)
		if tc.ok {
			assert.NotContains(t, errs, "id_no", "id_no=%q", tc.idNo)
		} else {
			assert.Contains(t, errs, "id_no", "id_no=%q", tc.idNo)
		}
	}
}

func TestValidateDraft_AllRulesEvaluated(t *testing.T) {
	// A draft with several bad fields reports each of them at once.
	errs := ValidateDraft(ContractDraft{
		IDNo:           "SHORT",
		Title:          "X",
		ApprovedBudget: "abc",
	})
	assert.Contains(t, errs, "id_no")
	assert.Contains(t, errs, "approved_budget")
	assert.Contains(t, errs, "status")
	assert.NotContains(t, errs, "title")
}

func TestValidateDraft_LengthLimits(t *testing.T) {
	long := func(n int) string {
		out := make([]byte, n)
		for i := range out {
			out[i] = 'a'
		}
		return string(out)
	}

	draft := validDraft()
	draft.Title = long(256)
	draft.Description = long(1001)
	draft.Contractor = long(101)
	draft.ProjectEngineer = long(101)
	draft.ProjectInspector = long(101)
	draft.Remarks = long(256)

	errs := ValidateDraft(draft)
	for _, field := range []string{
		"title", "description", "contractor",
		"project_engineer", "project_inspector", "remarks",
	} {
		assert.Contains(t, errs, field)
	}

	draft.Title = long(255)
	draft.Description = long(1000)
	draft.Contractor = long(100)
	draft.ProjectEngineer = long(100)
	draft.ProjectInspector = long(100)
	draft.Remarks = long(255)
	assert.Empty(t, ValidateDraft(draft))
}

func TestValidateDraft_LengthLimitsCountCharacters(t *testing.T) {
	accented := func(n int) string {
		out := make([]rune, n)
		for i := range out {
			out[i] = 'é' // 2 bytes per character
		}
		return string(out)
	}

	draft := validDraft()
	draft.Title = accented(255)
	draft.Description = accented(1000)
	draft.Contractor = accented(100)
	draft.Remarks = accented(255)
	assert.Empty(t, ValidateDraft(draft))

	draft.Title = accented(256)
	draft.Contractor = accented(101)
	errs := ValidateDraft(draft)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "contractor")
}

func TestValidateDraft_Status(t *testing.T) {
	for _, bad := range []string{"", "x", "1.5", "-1", "10"} {
		draft := validDraft()
		draft.Status = bad
		assert.Contains(t, ValidateDraft(draft), "status", "status=%q", bad)
	}
	for _, good := range []string{"0", "5", "9"} {
		draft := validDraft()
		draft.Status = good
		assert.NotContains(t, ValidateDraft(draft), "status", "status=%q", good)
	}
}

func TestValidateDraft_Dates(t *testing.T) {
	draft := validDraft()
	draft.PreBidDate = "2024-03-15T09:30:00Z"
	draft.OpeningOfBidsDate = "2024-03-20T10:00:00Z"
	draft.StartOfPostingDate = "2024-03-01"
	draft.CompletionDate = "2024-12-31"
	assert.Empty(t, ValidateDraft(draft))

	draft.StartOfPostingDate = "not-a-date"
	draft.PreBidDate = "also wrong"
	errs := ValidateDraft(draft)
	assert.Contains(t, errs, "start_of_posting_date")
	assert.Contains(t, errs, "pre_bid_date")
}

func TestDraftToModel(t *testing.T) {
	draft := validDraft()
	draft.Description = "Widening of the coastal road"
	draft.ProgramAmount = "2000000.00"
	draft.PreBidDate = "2024-03-15T09:30:00Z"
	draft.ContractStartDate = "2024-05-01"
	draft.ReAdvertised = true
	draft.Status = "3"

	contract := draft.toModel()
	require.NotNil(t, contract)
	assert.Equal(t, "PR-2024-01", contract.IDNo)
	assert.Equal(t, 1500000.00, contract.ApprovedBudget)
	require.NotNil(t, contract.ProgramAmount)
	assert.Equal(t, 2000000.00, *contract.ProgramAmount)
	assert.Nil(t, contract.ContractCost)
	require.NotNil(t, contract.PreBidDate)
	assert.Equal(t, 9, contract.PreBidDate.Hour())
	require.NotNil(t, contract.ContractStartDate)
	assert.Nil(t, contract.ContractEndDate)
	assert.True(t, contract.ReAdvertised)
	assert.Equal(t, 3, contract.Status)
}
