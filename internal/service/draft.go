package service

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/provtrack/bidwatch/internal/model"
)

const (
	dateLayout = "2006-01-02"

	idNoLength     = 10
	maxTitle       = 255
	maxDescription = 1000
	maxContractor  = 100
	maxNameField   = 100
	maxRemarks     = 255
	minStatusCode  = 0
	maxStatusCode  = 9
)

// ContractDraft is the submission payload of the creation form. Amounts
// arrive as unformatted numeric strings, date-only fields as
// "2006-01-02", date-time fields as RFC3339. Empty string means "no
// value" for every optional field.
type ContractDraft struct {
	IDNo               string `json:"id_no"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	ProgramAmount      string `json:"program_amount"`
	ApprovedBudget     string `json:"approved_budget"`
	ContractCost       string `json:"contract_cost"`
	Contractor         string `json:"contractor"`
	PreBidDate         string `json:"pre_bid_date"`
	OpeningOfBidsDate  string `json:"opening_of_bids_date"`
	StartOfPostingDate string `json:"start_of_posting_date"`
	EndOfPostingDate   string `json:"end_of_posting_date"`
	ContractStartDate  string `json:"contract_start_date"`
	ContractEndDate    string `json:"contract_end_date"`
	CompletionDate     string `json:"completion_date"`
	ProjectEngineer    string `json:"project_engineer"`
	ProjectInspector   string `json:"project_inspector"`
	Remarks            string `json:"remarks"`
	ReAdvertised       bool   `json:"re_advertised"`
	Status             string `json:"status"`
}

// ValidateDraft runs every rule and returns one message per violated
// field. Rules are not short-circuited: a draft with three bad fields
// yields three entries. Lengths count characters, not bytes, matching
// the varchar column limits.
func ValidateDraft(d ContractDraft) map[string]string {
	errs := map[string]string{}

	if utf8.RuneCountInString(strings.TrimSpace(d.IDNo)) != idNoLength {
		errs["id_no"] = "ID No is required and must be 10 characters."
	}
	if strings.TrimSpace(d.Title) == "" {
		errs["title"] = "Title is required."
	} else if utf8.RuneCountInString(d.Title) > maxTitle {
		errs["title"] = "Title must be at most 255 characters."
	}
	if utf8.RuneCountInString(d.Description) > maxDescription {
		errs["description"] = "Description must be at most 1000 characters."
	}
	if _, err := strconv.ParseFloat(d.ApprovedBudget, 64); d.ApprovedBudget == "" || err != nil {
		errs["approved_budget"] = "Approved budget is required and must be a number."
	}
	if d.ProgramAmount != "" {
		if _, err := strconv.ParseFloat(d.ProgramAmount, 64); err != nil {
			errs["program_amount"] = "Program amount must be a number."
		}
	}
	if d.ContractCost != "" {
		if _, err := strconv.ParseFloat(d.ContractCost, 64); err != nil {
			errs["contract_cost"] = "Contract cost must be a number."
		}
	}
	if utf8.RuneCountInString(d.Contractor) > maxContractor {
		errs["contractor"] = "Contractor must be at most 100 characters."
	}
	if utf8.RuneCountInString(d.ProjectEngineer) > maxNameField {
		errs["project_engineer"] = "Project engineer must be at most 100 characters."
	}
	if utf8.RuneCountInString(d.ProjectInspector) > maxNameField {
		errs["project_inspector"] = "Project inspector must be at most 100 characters."
	}
	if utf8.RuneCountInString(d.Remarks) > maxRemarks {
		errs["remarks"] = "Remarks must be at most 255 characters."
	}
	if code, err := strconv.Atoi(strings.TrimSpace(d.Status)); d.Status == "" || err != nil {
		errs["status"] = "Status is required and must be an integer."
	} else if code < minStatusCode || code > maxStatusCode {
		errs["status"] = "Status must be between 0 and 9."
	}

	for field, value := range map[string]string{
		"pre_bid_date":         d.PreBidDate,
		"opening_of_bids_date": d.OpeningOfBidsDate,
	} {
		if value == "" {
			continue
		}
		if _, err := parseDateTime(value); err != nil {
			errs[field] = "Must be a valid date and time."
		}
	}
	for field, value := range map[string]string{
		"start_of_posting_date": d.StartOfPostingDate,
		"end_of_posting_date":   d.EndOfPostingDate,
		"contract_start_date":   d.ContractStartDate,
		"contract_end_date":     d.ContractEndDate,
		"completion_date":       d.CompletionDate,
	} {
		if value == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, value); err != nil {
			errs[field] = "Must be a valid date."
		}
	}

	return errs
}

// toModel assumes the draft already passed ValidateDraft.
func (d ContractDraft) toModel() *model.Contract {
	budget, _ := strconv.ParseFloat(d.ApprovedBudget, 64)
	status, _ := strconv.Atoi(strings.TrimSpace(d.Status))

	contract := &model.Contract{
		IDNo:             strings.TrimSpace(d.IDNo),
		Title:            d.Title,
		Description:      optionalString(d.Description),
		ApprovedBudget:   budget,
		ProgramAmount:    optionalAmount(d.ProgramAmount),
		ContractCost:     optionalAmount(d.ContractCost),
		Contractor:       optionalString(d.Contractor),
		ProjectEngineer:  optionalString(d.ProjectEngineer),
		ProjectInspector: optionalString(d.ProjectInspector),
		Remarks:          optionalString(d.Remarks),
		ReAdvertised:     d.ReAdvertised,
		Status:           status,
	}

	contract.PreBidDate = optionalDateTime(d.PreBidDate)
	contract.OpeningOfBidsDate = optionalDateTime(d.OpeningOfBidsDate)
	contract.StartOfPostingDate = optionalDate(d.StartOfPostingDate)
	contract.EndOfPostingDate = optionalDate(d.EndOfPostingDate)
	contract.ContractStartDate = optionalDate(d.ContractStartDate)
	contract.ContractEndDate = optionalDate(d.ContractEndDate)
	contract.CompletionDate = optionalDate(d.CompletionDate)

	return contract
}

func parseDateTime(raw string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		dateLayout,
	}
	var firstErr error
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return parsed, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func optionalString(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

func optionalAmount(raw string) *float64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

func optionalDateTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	value, err := parseDateTime(raw)
	if err != nil {
		return nil
	}
	return &value
}

func optionalDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	value, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	return &value
}
