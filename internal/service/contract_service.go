package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/provtrack/bidwatch/internal/model"
	"github.com/provtrack/bidwatch/internal/repository"
)

type ContractService struct {
	contracts *repository.ContractRepository
	engineers *repository.EngineerRepository
	statuses  *repository.StatusRepository
}

func NewContractService(
	contracts *repository.ContractRepository,
	engineers *repository.EngineerRepository,
	statuses *repository.StatusRepository,
) *ContractService {
	return &ContractService{
		contracts: contracts,
		engineers: engineers,
		statuses:  statuses,
	}
}

// CreateContract validates the draft, persists it and returns the
// stored record with server-assigned id and timestamps. Failures come
// back as a *ValidationError keyed by field name so the form can mirror
// them inline.
func (s *ContractService) CreateContract(ctx context.Context, draft ContractDraft) (*model.Contract, error) {
	if errs := ValidateDraft(draft); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	contract := draft.toModel()
	if err := s.contracts.Create(ctx, contract); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ValidationError{Fields: map[string]string{
				"id_no": "ID No is already taken.",
			}}
		}
		return nil, err
	}
	return contract, nil
}

func (s *ContractService) GetContract(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (s *ContractService) ListContracts(ctx context.Context, limit, offset int) ([]model.Contract, error) {
	return s.contracts.List(ctx, limit, offset)
}

// GetContractByIDNo resolves a contract by its procurement number, the
// dashboard's lookup key.
func (s *ContractService) GetContractByIDNo(ctx context.Context, idNo string) (*model.Contract, error) {
	contract, err := s.contracts.GetByIDNo(ctx, strings.TrimSpace(idNo))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (s *ContractService) UpdateContract(ctx context.Context, id uuid.UUID, draft ContractDraft) (*model.Contract, error) {
	if errs := ValidateDraft(draft); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	existing, err := s.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := draft.toModel()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.contracts.Update(ctx, updated); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ValidationError{Fields: map[string]string{
				"id_no": "ID No is already taken.",
			}}
		}
		return nil, err
	}
	return updated, nil
}

func (s *ContractService) DeleteContract(ctx context.Context, id uuid.UUID) error {
	err := s.contracts.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// AssignEngineer links an engineer to a contract under a role. The
// same engineer may be linked under both roles, but linking the same
// role twice fails with ErrConflict.
func (s *ContractService) AssignEngineer(ctx context.Context, contractID, engineerID uuid.UUID, role model.EngineerRole) (*model.ContractEngineer, error) {
	if _, ok := model.ParseEngineerRole(string(role)); !ok {
		return nil, ErrInvalidInput
	}

	link := &model.ContractEngineer{
		ContractID: contractID,
		EngineerID: engineerID,
		Role:       role,
	}
	if err := s.contracts.LinkEngineer(ctx, link); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrConflict
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, ErrReference
		}
		return nil, err
	}
	return link, nil
}

func (s *ContractService) RemoveEngineer(ctx context.Context, contractID, engineerID uuid.UUID, role model.EngineerRole) error {
	if _, ok := model.ParseEngineerRole(string(role)); !ok {
		return ErrInvalidInput
	}
	err := s.contracts.UnlinkEngineer(ctx, contractID, engineerID, role)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *ContractService) EngineersWithRole(ctx context.Context, contractID uuid.UUID, role model.EngineerRole) ([]model.Engineer, error) {
	if _, ok := model.ParseEngineerRole(string(role)); !ok {
		return nil, ErrInvalidInput
	}
	return s.contracts.EngineersWithRole(ctx, contractID, role)
}

func (s *ContractService) ContractsForEngineer(ctx context.Context, engineerID uuid.UUID, role model.EngineerRole) ([]model.Contract, error) {
	if _, ok := model.ParseEngineerRole(string(role)); !ok {
		return nil, ErrInvalidInput
	}
	return s.contracts.ContractsForEngineer(ctx, engineerID, role)
}

// LinkStatus attaches a status definition to a contract without
// touching the current flag.
func (s *ContractService) LinkStatus(ctx context.Context, contractID, statusID uuid.UUID) (*model.ContractProjectStatus, error) {
	link := &model.ContractProjectStatus{
		ContractID:      contractID,
		ProjectStatusID: statusID,
	}
	if err := s.contracts.LinkStatus(ctx, link); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrConflict
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, ErrReference
		}
		return nil, err
	}
	return link, nil
}

// SetCurrentStatus makes the given status the single current one for
// the contract. Clear-then-set runs inside one repository transaction.
func (s *ContractService) SetCurrentStatus(ctx context.Context, contractID, statusID uuid.UUID) error {
	if _, err := s.GetContract(ctx, contractID); err != nil {
		return err
	}
	if _, err := s.statuses.GetByID(ctx, statusID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReference
		}
		return err
	}
	return s.contracts.SetCurrentStatus(ctx, contractID, statusID)
}

// StatusLinks lists every status association for a contract, oldest
// first.
func (s *ContractService) StatusLinks(ctx context.Context, contractID uuid.UUID) ([]model.ContractProjectStatus, error) {
	return s.contracts.StatusesForContract(ctx, contractID)
}

// BuildRegister resolves every contract with its current status and
// assigned engineers for the dashboard register and the exports.
func (s *ContractService) BuildRegister(ctx context.Context) (*model.ContractRegister, error) {
	contracts, err := s.contracts.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	register := &model.ContractRegister{
		GeneratedAt: time.Now().UTC(),
		Rows:        make([]model.RegisterRow, 0, len(contracts)),
	}
	for _, contract := range contracts {
		row := model.RegisterRow{Contract: contract}

		status, err := s.CurrentStatus(ctx, contract.ID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		row.CurrentStatus = status

		row.ProjectEngineers, err = s.contracts.EngineersWithRole(ctx, contract.ID, model.RoleProjectEngineer)
		if err != nil {
			return nil, err
		}
		row.ProjectInspectors, err = s.contracts.EngineersWithRole(ctx, contract.ID, model.RoleProjectInspector)
		if err != nil {
			return nil, err
		}

		register.Rows = append(register.Rows, row)
	}
	return register, nil
}

// RegisterRow resolves a single contract for the summary sheet.
func (s *ContractService) RegisterRow(ctx context.Context, contractID uuid.UUID) (*model.RegisterRow, error) {
	contract, err := s.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	row := &model.RegisterRow{Contract: *contract}
	status, err := s.CurrentStatus(ctx, contractID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	row.CurrentStatus = status

	row.ProjectEngineers, err = s.contracts.EngineersWithRole(ctx, contractID, model.RoleProjectEngineer)
	if err != nil {
		return nil, err
	}
	row.ProjectInspectors, err = s.contracts.EngineersWithRole(ctx, contractID, model.RoleProjectInspector)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// CurrentStatus returns the status definition currently flagged for the
// contract, or ErrNotFound when none is.
func (s *ContractService) CurrentStatus(ctx context.Context, contractID uuid.UUID) (*model.ProjectStatus, error) {
	link, err := s.contracts.CurrentStatus(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	status, err := s.statuses.GetByID(ctx, link.ProjectStatusID)
	if err != nil {
		return nil, err
	}
	return status, nil
}
