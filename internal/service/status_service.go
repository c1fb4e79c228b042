package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/provtrack/bidwatch/internal/model"
	"github.com/provtrack/bidwatch/internal/repository"
)

type StatusService struct {
	statuses *repository.StatusRepository
}

func NewStatusService(statuses *repository.StatusRepository) *StatusService {
	return &StatusService{statuses: statuses}
}

type StatusInput struct {
	StatusName  string `json:"status_name"`
	Description string `json:"description"`
}

func (s *StatusService) CreateStatus(ctx context.Context, in StatusInput) (*model.ProjectStatus, error) {
	if strings.TrimSpace(in.StatusName) == "" {
		return nil, &ValidationError{Fields: map[string]string{
			"status_name": "Status name is required.",
		}}
	}

	status := &model.ProjectStatus{
		StatusName:  strings.TrimSpace(in.StatusName),
		Description: optionalString(in.Description),
	}
	if err := s.statuses.Create(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *StatusService) GetStatus(ctx context.Context, id uuid.UUID) (*model.ProjectStatus, error) {
	status, err := s.statuses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return status, nil
}

func (s *StatusService) ListStatuses(ctx context.Context) ([]model.ProjectStatus, error) {
	return s.statuses.List(ctx)
}

func (s *StatusService) DeleteStatus(ctx context.Context, id uuid.UUID) error {
	err := s.statuses.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
