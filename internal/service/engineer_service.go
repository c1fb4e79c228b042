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

type EngineerService struct {
	engineers *repository.EngineerRepository
}

func NewEngineerService(engineers *repository.EngineerRepository) *EngineerService {
	return &EngineerService{engineers: engineers}
}

type EngineerInput struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	MiddleInitial string `json:"middle_initial"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
}

func validateEngineerInput(in EngineerInput) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(in.FirstName) == "" {
		errs["first_name"] = "First name is required."
	}
	if strings.TrimSpace(in.LastName) == "" {
		errs["last_name"] = "Last name is required."
	}
	return errs
}

func (s *EngineerService) CreateEngineer(ctx context.Context, in EngineerInput) (*model.Engineer, error) {
	if errs := validateEngineerInput(in); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	engineer := &model.Engineer{
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		MiddleInitial: optionalString(in.MiddleInitial),
		Email:         optionalString(in.Email),
		PhoneNumber:   optionalString(in.PhoneNumber),
	}
	if err := s.engineers.Create(ctx, engineer); err != nil {
		return nil, err
	}
	return engineer, nil
}

func (s *EngineerService) GetEngineer(ctx context.Context, id uuid.UUID) (*model.Engineer, error) {
	engineer, err := s.engineers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return engineer, nil
}

func (s *EngineerService) ListEngineers(ctx context.Context) ([]model.Engineer, error) {
	return s.engineers.List(ctx)
}

func (s *EngineerService) UpdateEngineer(ctx context.Context, id uuid.UUID, in EngineerInput) (*model.Engineer, error) {
	if errs := validateEngineerInput(in); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	engineer, err := s.GetEngineer(ctx, id)
	if err != nil {
		return nil, err
	}

	engineer.FirstName = strings.TrimSpace(in.FirstName)
	engineer.LastName = strings.TrimSpace(in.LastName)
	engineer.MiddleInitial = optionalString(in.MiddleInitial)
	engineer.Email = optionalString(in.Email)
	engineer.PhoneNumber = optionalString(in.PhoneNumber)

	if err := s.engineers.Update(ctx, engineer); err != nil {
		return nil, err
	}
	return engineer, nil
}

// DeleteEngineer removes the engineer; association rows cascade at the
// storage layer.
func (s *EngineerService) DeleteEngineer(ctx context.Context, id uuid.UUID) error {
	err := s.engineers.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
