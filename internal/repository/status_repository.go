package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/provtrack/bidwatch/internal/model"
)

type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) Create(ctx context.Context, status *model.ProjectStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *StatusRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ProjectStatus, error) {
	var status model.ProjectStatus
	if err := r.db.WithContext(ctx).First(&status, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *StatusRepository) List(ctx context.Context) ([]model.ProjectStatus, error) {
	statuses := []model.ProjectStatus{}
	err := r.db.WithContext(ctx).Order("status_name ASC").Find(&statuses).Error
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *StatusRepository) Update(ctx context.Context, status *model.ProjectStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *StatusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ProjectStatus{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
