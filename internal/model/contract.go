package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contract is a procurement contract record. The date columns are
// nullable on purpose: an unset date is a distinct state from a zero
// date. PreBidDate and OpeningOfBidsDate carry a time component, the
// remaining dates are calendar days.
type Contract struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	IDNo               string     `gorm:"column:id_no;type:char(10);not null;uniqueIndex:uq_contracts_id_no" json:"id_no"`
	Title              string     `gorm:"type:varchar(255);not null" json:"title"`
	Description        *string    `gorm:"type:varchar(1000)" json:"description,omitempty"`
	ProgramAmount      *float64   `gorm:"type:decimal(15,2)" json:"program_amount,omitempty"`
	ApprovedBudget     float64    `gorm:"type:decimal(15,2);not null" json:"approved_budget"`
	ContractCost       *float64   `gorm:"type:decimal(15,2)" json:"contract_cost,omitempty"`
	Contractor         *string    `gorm:"type:varchar(100)" json:"contractor,omitempty"`
	PreBidDate         *time.Time `gorm:"type:timestamp" json:"pre_bid_date,omitempty"`
	OpeningOfBidsDate  *time.Time `gorm:"type:timestamp" json:"opening_of_bids_date,omitempty"`
	StartOfPostingDate *time.Time `gorm:"type:date" json:"start_of_posting_date,omitempty"`
	EndOfPostingDate   *time.Time `gorm:"type:date" json:"end_of_posting_date,omitempty"`
	ContractStartDate  *time.Time `gorm:"type:date" json:"contract_start_date,omitempty"`
	ContractEndDate    *time.Time `gorm:"type:date" json:"contract_end_date,omitempty"`
	CompletionDate     *time.Time `gorm:"type:date" json:"completion_date,omitempty"`
	// Deprecated: display cache for older dashboard clients. The
	// contract_engineer association is authoritative.
	ProjectEngineer  *string   `gorm:"type:varchar(100)" json:"project_engineer,omitempty"`
	ProjectInspector *string   `gorm:"type:varchar(100)" json:"project_inspector,omitempty"`
	Remarks          *string   `gorm:"type:varchar(255)" json:"remarks,omitempty"`
	ReAdvertised     bool      `gorm:"not null;default:false" json:"re_advertised"`
	Status           int       `gorm:"type:smallint;not null;default:0" json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Contract) TableName() string { return "contracts" }

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
