package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provtrack/bidwatch/internal/model"
	"github.com/provtrack/bidwatch/internal/service"
)

// fakeSubmitter scripts one response per call and records what it saw.
type fakeSubmitter struct {
	calls    int
	payloads []service.ContractDraft
	contexts []context.Context

	contract    *model.Contract
	fieldErrors map[string]string
	errs        []error
}

func (s *fakeSubmitter) Submit(ctx context.Context, draft service.ContractDraft) (*model.Contract, map[string]string, error) {
	s.payloads = append(s.payloads, draft)
	s.contexts = append(s.contexts, ctx)
	s.calls++
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return nil, nil, err
		}
	}
	if s.fieldErrors != nil {
		return nil, s.fieldErrors, nil
	}
	return s.contract, nil, nil
}

func openedForm(t *testing.T, cfg Config) *ContractForm {
	t.Helper()
	f := New(cfg)
	require.NoError(t, f.Open())
	return f
}

func fillValid(t *testing.T, f *ContractForm) {
	t.Helper()
	require.NoError(t, f.SetField(FieldIDNo, "PR-2024-01"))
	require.NoError(t, f.SetField(FieldTitle, "Road Widening"))
	require.NoError(t, f.SetField(FieldApprovedBudget, "1500000"))
	require.NoError(t, f.SetField(FieldStatus, "0"))
}

func TestForm_OpenCloseTransitions(t *testing.T) {
	f := New(Config{})
	assert.Equal(t, StateIdle, f.State())

	require.NoError(t, f.Open())
	assert.Equal(t, StateEditing, f.State())

	// Opening an already-open form is illegal.
	assert.Error(t, f.Open())

	require.NoError(t, f.SetField(FieldTitle, "Drainage Works"))
	require.NoError(t, f.Close())
	assert.Equal(t, StateIdle, f.State())

	// Reopening starts from a blank draft.
	require.NoError(t, f.Open())
	assert.Empty(t, f.DisplayValue(FieldTitle))
}

func TestForm_EditRequiresEditingState(t *testing.T) {
	f := New(Config{})
	assert.Error(t, f.SetField(FieldTitle, "x"))
	assert.Error(t, f.SetReAdvertised(true))
	assert.Error(t, f.SetPreBidNone(true))

	_, err := f.Submit(context.Background(), &fakeSubmitter{})
	assert.Error(t, err)
}

func TestForm_UnknownField(t *testing.T) {
	f := openedForm(t, Config{})
	assert.Error(t, f.SetField("no_such_field", "x"))
}

func TestForm_CurrencyNormalizationAndDisplay(t *testing.T) {
	f := openedForm(t, Config{})

	require.NoError(t, f.SetField(FieldApprovedBudget, "1,500,000.00"))
	assert.Equal(t, "1500000.00", f.Payload().ApprovedBudget)
	assert.Equal(t, "1,500,000.00", f.DisplayValue(FieldApprovedBudget))

	// Non-currency fields pass through verbatim.
	require.NoError(t, f.SetField(FieldRemarks, "1,500"))
	assert.Equal(t, "1,500", f.DisplayValue(FieldRemarks))
}

func TestForm_PreBidNoneToggle(t *testing.T) {
	f := openedForm(t, Config{})

	require.NoError(t, f.SetField(FieldPreBidDate, "2024-03-15T09:30:00Z"))
	require.NoError(t, f.SetPreBidNone(true))
	assert.True(t, f.PreBidNone())

	// The entered date is cleared and the field is disabled.
	assert.Empty(t, f.DisplayValue(FieldPreBidDate))
	assert.Error(t, f.SetField(FieldPreBidDate, "2024-03-16T09:30:00Z"))
	assert.Empty(t, f.Payload().PreBidDate)

	// Deactivating re-enables the field but does not restore the date.
	require.NoError(t, f.SetPreBidNone(false))
	require.NoError(t, f.SetField(FieldPreBidDate, "2024-03-16T09:30:00Z"))
	assert.Equal(t, "2024-03-16T09:30:00Z", f.Payload().PreBidDate)
}

func TestForm_SubmitLocalValidationFailure(t *testing.T) {
	f := openedForm(t, Config{})
	submitter := &fakeSubmitter{}

	require.NoError(t, f.SetField(FieldIDNo, "SHORT"))
	require.NoError(t, f.SetField(FieldTitle, "X"))
	require.NoError(t, f.SetField(FieldApprovedBudget, "12"))
	require.NoError(t, f.SetField(FieldStatus, "0"))

	_, err := f.Submit(context.Background(), submitter)
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "id_no")

	// No network call was made and the data is still there.
	assert.Zero(t, submitter.calls)
	assert.Equal(t, StateEditing, f.State())
	assert.Equal(t, "SHORT", f.DisplayValue(FieldIDNo))
	assert.Contains(t, f.Errors(), "id_no")
}

func TestForm_SubmitSuccess(t *testing.T) {
	stored := &model.Contract{IDNo: "PR-2024-01", Title: "Road Widening"}
	submitter := &fakeSubmitter{contract: stored}
	f := openedForm(t, Config{})
	fillValid(t, f)

	contract, err := f.Submit(context.Background(), submitter)
	require.NoError(t, err)
	assert.Same(t, stored, contract)

	// Success resets the workflow completely.
	assert.Equal(t, StateIdle, f.State())
	require.NoError(t, f.Open())
	assert.Empty(t, f.DisplayValue(FieldIDNo))
	assert.Empty(t, f.Errors())

	require.Len(t, submitter.payloads, 1)
	assert.Equal(t, "PR-2024-01", submitter.payloads[0].IDNo)
}

func TestForm_SubmitServerRejection(t *testing.T) {
	submitter := &fakeSubmitter{fieldErrors: map[string]string{
		"id_no": "ID No is already taken.",
	}}
	f := openedForm(t, Config{})
	fillValid(t, f)

	_, err := f.Submit(context.Background(), submitter)
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "ID No is already taken.", verr.Fields["id_no"])

	// Back to editing with the server messages and the draft intact.
	assert.Equal(t, StateEditing, f.State())
	assert.Equal(t, map[string]string{"id_no": "ID No is already taken."}, f.Errors())
	assert.Equal(t, "PR-2024-01", f.DisplayValue(FieldIDNo))
	assert.Equal(t, 1, submitter.calls)
}

func TestForm_SubmitRetriesOnceOnTransportFailure(t *testing.T) {
	stored := &model.Contract{IDNo: "PR-2024-01"}
	submitter := &fakeSubmitter{
		contract: stored,
		errs:     []error{errors.New("connection reset")},
	}
	f := openedForm(t, Config{RetryOnce: true})
	fillValid(t, f)

	contract, err := f.Submit(context.Background(), submitter)
	require.NoError(t, err)
	assert.Same(t, stored, contract)
	assert.Equal(t, 2, submitter.calls)
}

func TestForm_SubmitTransportFailureKeepsDraft(t *testing.T) {
	boom := errors.New("connection reset")
	submitter := &fakeSubmitter{errs: []error{boom, boom}}
	f := openedForm(t, Config{RetryOnce: true})
	fillValid(t, f)

	_, err := f.Submit(context.Background(), submitter)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, submitter.calls)

	assert.Equal(t, StateEditing, f.State())
	assert.Equal(t, "PR-2024-01", f.DisplayValue(FieldIDNo))
}

func TestForm_SubmitNoRetryWhenDisabled(t *testing.T) {
	boom := errors.New("connection reset")
	submitter := &fakeSubmitter{errs: []error{boom}}
	f := openedForm(t, Config{RetryOnce: false})
	fillValid(t, f)

	_, err := f.Submit(context.Background(), submitter)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, submitter.calls)
}

func TestForm_SubmitNoRetryAfterCallerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	submitter := &fakeSubmitter{errs: []error{context.Canceled}}
	f := openedForm(t, Config{RetryOnce: true})
	fillValid(t, f)

	cancel()
	_, err := f.Submit(ctx, submitter)
	assert.Error(t, err)
	assert.Equal(t, 1, submitter.calls)
}

func TestForm_SubmitAttemptsHaveDeadline(t *testing.T) {
	submitter := &fakeSubmitter{contract: &model.Contract{}}
	f := openedForm(t, Config{SubmitTimeout: 5 * time.Second})
	fillValid(t, f)

	_, err := f.Submit(context.Background(), submitter)
	require.NoError(t, err)

	require.Len(t, submitter.contexts, 1)
	deadline, ok := submitter.contexts[0].Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}

func TestForm_PayloadSendsExplicitEmptyPreBidDate(t *testing.T) {
	submitter := &fakeSubmitter{contract: &model.Contract{}}
	f := openedForm(t, Config{})
	fillValid(t, f)
	require.NoError(t, f.SetPreBidNone(true))

	_, err := f.Submit(context.Background(), submitter)
	require.NoError(t, err)

	require.Len(t, submitter.payloads, 1)
	assert.Empty(t, submitter.payloads[0].PreBidDate)
}
