package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/provtrack/bidwatch/internal/model"
)

type EngineerRepository struct {
	db *gorm.DB
}

func NewEngineerRepository(db *gorm.DB) *EngineerRepository {
	return &EngineerRepository{db: db}
}

func (r *EngineerRepository) Create(ctx context.Context, engineer *model.Engineer) error {
	return r.db.WithContext(ctx).Create(engineer).Error
}

func (r *EngineerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Engineer, error) {
	var engineer model.Engineer
	if err := r.db.WithContext(ctx).First(&engineer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &engineer, nil
}

func (r *EngineerRepository) List(ctx context.Context) ([]model.Engineer, error) {
	engineers := []model.Engineer{}
	err := r.db.WithContext(ctx).
		Order("last_name ASC, first_name ASC").
		Find(&engineers).Error
	if err != nil {
		return nil, err
	}
	return engineers, nil
}

func (r *EngineerRepository) Update(ctx context.Context, engineer *model.Engineer) error {
	return r.db.WithContext(ctx).Save(engineer).Error
}

func (r *EngineerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Engineer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
