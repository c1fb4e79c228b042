package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/provtrack/bidwatch/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	if err := r.db.WithContext(ctx).First(&contract, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepository) GetByIDNo(ctx context.Context, idNo string) (*model.Contract, error) {
	var contract model.Contract
	if err := r.db.WithContext(ctx).First(&contract, "id_no = ?", idNo).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepository) List(ctx context.Context, limit, offset int) ([]model.Contract, error) {
	contracts := []model.Contract{}
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *ContractRepository) Update(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

func (r *ContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Contract{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LinkEngineer inserts one role-qualified association row. A duplicate
// (contract, engineer, role) triple surfaces as gorm.ErrDuplicatedKey,
// a missing referent as gorm.ErrForeignKeyViolated.
func (r *ContractRepository) LinkEngineer(ctx context.Context, link *model.ContractEngineer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(link).Error
}

// UnlinkEngineer removes a specific association row. An absent row is
// reported, never silently dropped.
func (r *ContractRepository) UnlinkEngineer(ctx context.Context, contractID, engineerID uuid.UUID, role model.EngineerRole) error {
	result := r.db.WithContext(ctx).
		Where("contract_id = ? AND engineer_id = ? AND role = ?", contractID, engineerID, role).
		Delete(&model.ContractEngineer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContractRepository) EngineersWithRole(ctx context.Context, contractID uuid.UUID, role model.EngineerRole) ([]model.Engineer, error) {
	engineers := []model.Engineer{}
	err := r.db.WithContext(ctx).
		Joins("JOIN contract_engineer ce ON ce.engineer_id = engineers.id").
		Where("ce.contract_id = ? AND ce.role = ?", contractID, role).
		Order("engineers.last_name ASC, engineers.first_name ASC").
		Find(&engineers).Error
	if err != nil {
		return nil, err
	}
	return engineers, nil
}

func (r *ContractRepository) ContractsForEngineer(ctx context.Context, engineerID uuid.UUID, role model.EngineerRole) ([]model.Contract, error) {
	contracts := []model.Contract{}
	err := r.db.WithContext(ctx).
		Joins("JOIN contract_engineer ce ON ce.contract_id = contracts.id").
		Where("ce.engineer_id = ? AND ce.role = ?", engineerID, role).
		Order("contracts.id_no ASC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// LinkStatus inserts one (contract, status) association row. Duplicate
// pairs surface as gorm.ErrDuplicatedKey.
func (r *ContractRepository) LinkStatus(ctx context.Context, link *model.ContractProjectStatus) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(link).Error
}

// SetCurrentStatus clears any current flag for the contract and marks
// the given status row current, inserting it if not yet linked. The
// clear and set run in one transaction so two current rows can never be
// observed.
func (r *ContractRepository) SetCurrentStatus(ctx context.Context, contractID, statusID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ContractProjectStatus{}).
			Where("contract_id = ? AND is_current", contractID).
			Update("is_current", false).Error; err != nil {
			return err
		}

		result := tx.Model(&model.ContractProjectStatus{}).
			Where("contract_id = ? AND project_status_id = ?", contractID, statusID).
			Update("is_current", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		return tx.Create(&model.ContractProjectStatus{
			ContractID:      contractID,
			ProjectStatusID: statusID,
			IsCurrent:       true,
		}).Error
	})
}

// CurrentStatus returns the association row flagged current, or
// gorm.ErrRecordNotFound when the contract has none.
func (r *ContractRepository) CurrentStatus(ctx context.Context, contractID uuid.UUID) (*model.ContractProjectStatus, error) {
	var link model.ContractProjectStatus
	err := r.db.WithContext(ctx).
		Where("contract_id = ? AND is_current", contractID).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *ContractRepository) StatusesForContract(ctx context.Context, contractID uuid.UUID) ([]model.ContractProjectStatus, error) {
	links := []model.ContractProjectStatus{}
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}
