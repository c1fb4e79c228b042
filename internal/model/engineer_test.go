package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineerFullName(t *testing.T) {
	middle := "C"
	e := Engineer{FirstName: "Maria", LastName: "Santos", MiddleInitial: &middle}
	assert.Equal(t, "Santos, Maria C.", e.FullName())

	e.MiddleInitial = nil
	assert.Equal(t, "Santos, Maria", e.FullName())

	empty := ""
	e.MiddleInitial = &empty
	assert.Equal(t, "Santos, Maria", e.FullName())
}

func TestParseEngineerRole(t *testing.T) {
	role, ok := ParseEngineerRole("project_engineer")
	assert.True(t, ok)
	assert.Equal(t, RoleProjectEngineer, role)

	role, ok = ParseEngineerRole("project_inspector")
	assert.True(t, ok)
	assert.Equal(t, RoleProjectInspector, role)

	_, ok = ParseEngineerRole("supervisor")
	assert.False(t, ok)
	_, ok = ParseEngineerRole("")
	assert.False(t, ok)
}
