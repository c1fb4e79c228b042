package model

import "time"

// RegisterRow is one contract with its resolved associations, as shown
// on the dashboard register and in exports.
type RegisterRow struct {
	Contract          Contract
	CurrentStatus     *ProjectStatus
	ProjectEngineers  []Engineer
	ProjectInspectors []Engineer
}

// ContractRegister is the full export snapshot.
type ContractRegister struct {
	GeneratedAt time.Time
	Rows        []RegisterRow
}
