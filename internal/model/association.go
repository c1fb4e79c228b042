package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EngineerRole string

const (
	RoleProjectEngineer  EngineerRole = "project_engineer"
	RoleProjectInspector EngineerRole = "project_inspector"
)

func ParseEngineerRole(raw string) (EngineerRole, bool) {
	switch EngineerRole(raw) {
	case RoleProjectEngineer, RoleProjectInspector:
		return EngineerRole(raw), true
	default:
		return "", false
	}
}

// ContractEngineer links a contract to an engineer under a role. The
// same engineer may hold both roles on one contract as two rows, but
// never the same role twice.
type ContractEngineer struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ContractID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_contract_engineer_role" json:"contract_id"`
	EngineerID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_contract_engineer_role" json:"engineer_id"`
	Role       EngineerRole `gorm:"type:varchar(50);not null;uniqueIndex:uq_contract_engineer_role" json:"role"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	Contract Contract `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"-"`
	Engineer Engineer `gorm:"foreignKey:EngineerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ContractEngineer) TableName() string { return "contract_engineer" }

func (l *ContractEngineer) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ContractProjectStatus links a contract to a status definition. The
// pair is unique; at most one row per contract should carry IsCurrent,
// which the service enforces transactionally since the schema cannot.
type ContractProjectStatus struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContractID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_contract_project_status" json:"contract_id"`
	ProjectStatusID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_contract_project_status" json:"project_status_id"`
	IsCurrent       bool      `gorm:"not null;default:false" json:"is_current"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Contract      Contract      `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"-"`
	ProjectStatus ProjectStatus `gorm:"foreignKey:ProjectStatusID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ContractProjectStatus) TableName() string { return "contract_project_status" }

func (l *ContractProjectStatus) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
