// Package form models the contract-creation dialog as an explicit
// state machine. The original dialog tracked open/validating/submitting
// with loose booleans; enumerated states make the illegal transitions
// (submitting twice, editing mid-flight) unrepresentable.
package form

import (
	"context"
	"fmt"
	"time"

	"github.com/provtrack/bidwatch/internal/model"
	"github.com/provtrack/bidwatch/internal/service"
)

type State string

const (
	StateIdle       State = "idle"
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
)

// Submitter is the network boundary of the workflow. fieldErrors is
// non-nil when the server rejected the draft with per-field messages;
// err reports transport failure.
type Submitter interface {
	Submit(ctx context.Context, draft service.ContractDraft) (contract *model.Contract, fieldErrors map[string]string, err error)
}

const (
	FieldIDNo               = "id_no"
	FieldTitle              = "title"
	FieldDescription        = "description"
	FieldProgramAmount      = "program_amount"
	FieldApprovedBudget     = "approved_budget"
	FieldContractCost       = "contract_cost"
	FieldContractor         = "contractor"
	FieldPreBidDate         = "pre_bid_date"
	FieldOpeningOfBidsDate  = "opening_of_bids_date"
	FieldStartOfPostingDate = "start_of_posting_date"
	FieldEndOfPostingDate   = "end_of_posting_date"
	FieldContractStartDate  = "contract_start_date"
	FieldContractEndDate    = "contract_end_date"
	FieldCompletionDate     = "completion_date"
	FieldProjectEngineer    = "project_engineer"
	FieldProjectInspector   = "project_inspector"
	FieldRemarks            = "remarks"
	FieldStatus             = "status"
)

var currencyFields = map[string]bool{
	FieldProgramAmount:  true,
	FieldApprovedBudget: true,
	FieldContractCost:   true,
}

type Config struct {
	SubmitTimeout time.Duration
	RetryOnce     bool
}

// ContractForm is a single-session workflow; it is not safe for
// concurrent use and does not need to be.
type ContractForm struct {
	cfg        Config
	state      State
	draft      service.ContractDraft
	preBidNone bool
	errs       map[string]string
}

func New(cfg Config) *ContractForm {
	if cfg.SubmitTimeout <= 0 {
		cfg.SubmitTimeout = 15 * time.Second
	}
	return &ContractForm{
		cfg:   cfg,
		state: StateIdle,
		errs:  map[string]string{},
	}
}

func (f *ContractForm) State() State { return f.state }

// Errors returns the current field error set, local or server-supplied.
func (f *ContractForm) Errors() map[string]string {
	out := make(map[string]string, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

func (f *ContractForm) PreBidNone() bool { return f.preBidNone }

// Open transitions the closed form into editing with an empty draft.
func (f *ContractForm) Open() error {
	if f.state != StateIdle {
		return fmt.Errorf("cannot open form in state %q", f.state)
	}
	f.reset()
	f.state = StateEditing
	return nil
}

// Close abandons the draft and returns to idle.
func (f *ContractForm) Close() error {
	if f.state == StateSubmitting {
		return fmt.Errorf("cannot close form while submitting")
	}
	f.reset()
	return nil
}

// SetField records a field value while editing. Currency fields are
// normalized to digits and a single decimal point on the way in.
func (f *ContractForm) SetField(name, value string) error {
	if f.state != StateEditing {
		return fmt.Errorf("cannot edit field in state %q", f.state)
	}
	if name == FieldPreBidDate && f.preBidNone {
		return fmt.Errorf("pre_bid_date is disabled while the none toggle is active")
	}
	if currencyFields[name] {
		value = NormalizeCurrencyInput(value)
	}

	switch name {
	case FieldIDNo:
		f.draft.IDNo = value
	case FieldTitle:
		f.draft.Title = value
	case FieldDescription:
		f.draft.Description = value
	case FieldProgramAmount:
		f.draft.ProgramAmount = value
	case FieldApprovedBudget:
		f.draft.ApprovedBudget = value
	case FieldContractCost:
		f.draft.ContractCost = value
	case FieldContractor:
		f.draft.Contractor = value
	case FieldPreBidDate:
		f.draft.PreBidDate = value
	case FieldOpeningOfBidsDate:
		f.draft.OpeningOfBidsDate = value
	case FieldStartOfPostingDate:
		f.draft.StartOfPostingDate = value
	case FieldEndOfPostingDate:
		f.draft.EndOfPostingDate = value
	case FieldContractStartDate:
		f.draft.ContractStartDate = value
	case FieldContractEndDate:
		f.draft.ContractEndDate = value
	case FieldCompletionDate:
		f.draft.CompletionDate = value
	case FieldProjectEngineer:
		f.draft.ProjectEngineer = value
	case FieldProjectInspector:
		f.draft.ProjectInspector = value
	case FieldRemarks:
		f.draft.Remarks = value
	case FieldStatus:
		f.draft.Status = value
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

func (f *ContractForm) SetReAdvertised(value bool) error {
	if f.state != StateEditing {
		return fmt.Errorf("cannot edit field in state %q", f.state)
	}
	f.draft.ReAdvertised = value
	return nil
}

// SetPreBidNone toggles the "no pre-bid conference" flag. Activating it
// clears any entered pre-bid date and disables the field; the flag
// itself never travels in the payload.
func (f *ContractForm) SetPreBidNone(active bool) error {
	if f.state != StateEditing {
		return fmt.Errorf("cannot edit field in state %q", f.state)
	}
	f.preBidNone = active
	if active {
		f.draft.PreBidDate = ""
	}
	return nil
}

// DisplayValue renders a field for the UI: currency fields come back
// thousands-grouped with two decimals, everything else verbatim.
func (f *ContractForm) DisplayValue(name string) string {
	raw := f.fieldValue(name)
	if currencyFields[name] {
		return FormatCurrency(raw)
	}
	return raw
}

// Payload assembles the draft for transmission with the pre-bid "none"
// normalization applied: an active toggle sends an explicitly empty
// pre_bid_date rather than omitting the field.
func (f *ContractForm) Payload() service.ContractDraft {
	payload := f.draft
	if f.preBidNone {
		payload.PreBidDate = ""
	}
	return payload
}

// Submit runs local validation and, if it passes, sends the payload.
// Validation failure attaches one message per offending field and
// returns to editing without any network call. A transport failure is
// retried once when configured; the entered data survives every failure
// path so nothing is lost.
func (f *ContractForm) Submit(ctx context.Context, submitter Submitter) (*model.Contract, error) {
	if f.state != StateEditing {
		return nil, fmt.Errorf("cannot submit in state %q", f.state)
	}

	f.state = StateValidating
	payload := f.Payload()
	if errs := service.ValidateDraft(payload); len(errs) > 0 {
		f.errs = errs
		f.state = StateEditing
		return nil, &service.ValidationError{Fields: errs}
	}

	f.state = StateSubmitting
	contract, fieldErrors, err := f.submitWithRetry(ctx, submitter, payload)
	switch {
	case err != nil:
		// Transport failure: keep the draft so the user can retry.
		f.state = StateEditing
		return nil, err
	case fieldErrors != nil:
		// Server rejection replaces the local error set.
		f.errs = fieldErrors
		f.state = StateEditing
		return nil, &service.ValidationError{Fields: fieldErrors}
	}

	f.reset()
	return contract, nil
}

func (f *ContractForm) submitWithRetry(ctx context.Context, submitter Submitter, payload service.ContractDraft) (*model.Contract, map[string]string, error) {
	attempt := func() (*model.Contract, map[string]string, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, f.cfg.SubmitTimeout)
		defer cancel()
		return submitter.Submit(attemptCtx, payload)
	}

	contract, fieldErrors, err := attempt()
	if err != nil && f.cfg.RetryOnce && ctx.Err() == nil {
		contract, fieldErrors, err = attempt()
	}
	return contract, fieldErrors, err
}

func (f *ContractForm) reset() {
	f.state = StateIdle
	f.draft = service.ContractDraft{}
	f.preBidNone = false
	f.errs = map[string]string{}
}

func (f *ContractForm) fieldValue(name string) string {
	switch name {
	case FieldIDNo:
		return f.draft.IDNo
	case FieldTitle:
		return f.draft.Title
	case FieldDescription:
		return f.draft.Description
	case FieldProgramAmount:
		return f.draft.ProgramAmount
	case FieldApprovedBudget:
		return f.draft.ApprovedBudget
	case FieldContractCost:
		return f.draft.ContractCost
	case FieldContractor:
		return f.draft.Contractor
	case FieldPreBidDate:
		return f.draft.PreBidDate
	case FieldOpeningOfBidsDate:
		return f.draft.OpeningOfBidsDate
	case FieldStartOfPostingDate:
		return f.draft.StartOfPostingDate
	case FieldEndOfPostingDate:
		return f.draft.EndOfPostingDate
	case FieldContractStartDate:
		return f.draft.ContractStartDate
	case FieldContractEndDate:
		return f.draft.ContractEndDate
	case FieldCompletionDate:
		return f.draft.CompletionDate
	case FieldProjectEngineer:
		return f.draft.ProjectEngineer
	case FieldProjectInspector:
		return f.draft.ProjectInspector
	case FieldRemarks:
		return f.draft.Remarks
	case FieldStatus:
		return f.draft.Status
	default:
		return ""
	}
}
