package model

import "github.com/google/uuid"

// Principal is the authenticated caller extracted from the access
// token. Passed explicitly down from the auth middleware instead of
// living in process-wide session state.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool { return p.Role == "ADMIN" }
