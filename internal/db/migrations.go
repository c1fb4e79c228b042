package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		id_no CHAR(10) NOT NULL,
		title VARCHAR(255) NOT NULL,
		description VARCHAR(1000),
		program_amount NUMERIC(15,2),
		approved_budget NUMERIC(15,2) NOT NULL,
		contract_cost NUMERIC(15,2),
		contractor VARCHAR(100),
		pre_bid_date TIMESTAMPTZ,
		opening_of_bids_date TIMESTAMPTZ,
		start_of_posting_date DATE,
		end_of_posting_date DATE,
		contract_start_date DATE,
		contract_end_date DATE,
		completion_date DATE,
		project_engineer VARCHAR(100),
		project_inspector VARCHAR(100),
		remarks VARCHAR(255),
		re_advertised BOOLEAN NOT NULL DEFAULT FALSE,
		status SMALLINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contracts_id_no ON contracts (id_no);`,
	`CREATE TABLE IF NOT EXISTS engineers (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		first_name VARCHAR(50) NOT NULL,
		last_name VARCHAR(50) NOT NULL,
		middle_initial VARCHAR(50),
		email VARCHAR(255),
		phone_number VARCHAR(20),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS project_statuses (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		status_name VARCHAR(100) NOT NULL,
		description VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS contract_engineer (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		engineer_id UUID NOT NULL REFERENCES engineers(id) ON DELETE CASCADE,
		role VARCHAR(50) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contract_engineer_role
		ON contract_engineer (contract_id, engineer_id, role);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_engineer_engineer_id ON contract_engineer (engineer_id);`,
	`CREATE TABLE IF NOT EXISTS contract_project_status (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		project_status_id UUID NOT NULL REFERENCES project_statuses(id) ON DELETE CASCADE,
		is_current BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contract_project_status
		ON contract_project_status (contract_id, project_status_id);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contract_current_status
		ON contract_project_status (contract_id) WHERE is_current;`,
	`CREATE INDEX IF NOT EXISTS idx_contract_project_status_status_id
		ON contract_project_status (project_status_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
