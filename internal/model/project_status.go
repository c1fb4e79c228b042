package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectStatus is a controlled vocabulary entry for contract lifecycle
// stages ("Posted", "Awarded", ...).
type ProjectStatus struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StatusName  string    `gorm:"type:varchar(100);not null" json:"status_name"`
	Description *string   `gorm:"type:varchar(255)" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ProjectStatus) TableName() string { return "project_statuses" }

func (s *ProjectStatus) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
