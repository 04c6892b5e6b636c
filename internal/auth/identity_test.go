// ABOUTME: Tests for the per-kind Identity normalization table
// ABOUTME: Each stored record maps to exactly one canonical Identity shape

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AtharvGangwar48/campus-gateway/internal/store"
)

func TestNormalizeUniversity(t *testing.T) {
	u := &store.University{ID: "U1", Username: "uniX"}

	identity := normalizeUniversity(u)
	assert.Equal(t, Identity{
		ID:           "U1",
		Role:         RoleUniversity,
		DisplayKey:   "uniX",
		UniversityID: "U1",
	}, identity)
}

func TestNormalizeSpoc(t *testing.T) {
	s := &store.Spoc{ID: "S1", Username: "spoc1", UniversityID: "U1", ProgramID: "P1"}

	identity := normalizeSpoc(s)
	assert.Equal(t, Identity{
		ID:           "S1",
		Role:         RoleSpoc,
		DisplayKey:   "spoc1",
		UniversityID: "U1",
		ProgramID:    "P1",
	}, identity)
}

func TestNormalizeStudent(t *testing.T) {
	s := &store.Student{ID: "ST1", Username: "jdoe", UniversityID: "U1", ProgramID: "P1"}

	identity := normalizeStudent(s)
	assert.Equal(t, Identity{
		ID:           "ST1",
		Role:         RoleStudent,
		DisplayKey:   "jdoe",
		UniversityID: "U1",
		ProgramID:    "P1",
	}, identity)
}

func TestNormalizeFaculty(t *testing.T) {
	f := &store.Faculty{ID: "FA1", EmployeeID: "F100", UniversityID: "U1", ProgramID: "P2"}

	identity := normalizeFaculty(f)
	assert.Equal(t, Identity{
		ID:           "FA1",
		Role:         RoleFaculty,
		DisplayKey:   "F100",
		UniversityID: "U1",
		ProgramID:    "P2",
	}, identity)
}

func TestAdminIdentity(t *testing.T) {
	identity := adminIdentity()
	assert.Equal(t, Identity{ID: "admin", Role: RoleAdmin, DisplayKey: "admin"}, identity)
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleUniversity, RoleSpoc, RoleStudent, RoleFaculty} {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}
