package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Engineer struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName     string    `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName      string    `gorm:"type:varchar(50);not null" json:"last_name"`
	MiddleInitial *string   `gorm:"type:varchar(50)" json:"middle_initial,omitempty"`
	Email         *string   `gorm:"type:varchar(255)" json:"email,omitempty"`
	PhoneNumber   *string   `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Engineer) TableName() string { return "engineers" }

func (e *Engineer) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// FullName renders "Last, First M." for dashboard listings.
func (e *Engineer) FullName() string {
	name := e.LastName + ", " + e.FirstName
	if e.MiddleInitial != nil && *e.MiddleInitial != "" {
		name += " " + *e.MiddleInitial + "."
	}
	return name
}
