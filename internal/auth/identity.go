// ABOUTME: Identity type and the per-kind normalization table
// ABOUTME: Maps each stored principal record to the canonical role-tagged Identity

package auth

import (
	"github.com/AtharvGangwar48/campus-gateway/internal/store"
)

// Role identifies which kind of principal an Identity belongs to
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleUniversity Role = "university"
	RoleSpoc       Role = "spoc"
	RoleStudent    Role = "student"
	RoleFaculty    Role = "faculty"
)

// Valid reports whether r is one of the five known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUniversity, RoleSpoc, RoleStudent, RoleFaculty:
		return true
	}
	return false
}

// AdminID is the well-known id of the administrator identity. The
// administrator has no backing store record.
const AdminID = "admin"

// Identity is the normalized record produced by successful verification.
// UniversityID and ProgramID are set only for the kinds that carry them;
// ID is stable across logins for the same principal.
type Identity struct {
	ID           string `json:"id"`
	Role         Role   `json:"role"`
	DisplayKey   string `json:"displayKey"`
	UniversityID string `json:"universityId,omitempty"`
	ProgramID    string `json:"programId,omitempty"`
}

// adminIdentity returns the constant administrator identity
func adminIdentity() Identity {
	return Identity{ID: AdminID, Role: RoleAdmin, DisplayKey: AdminID}
}

func normalizeUniversity(u *store.University) Identity {
	return Identity{
		ID:           u.ID,
		Role:         RoleUniversity,
		DisplayKey:   u.Username,
		UniversityID: u.ID,
	}
}

func normalizeSpoc(s *store.Spoc) Identity {
	return Identity{
		ID:           s.ID,
		Role:         RoleSpoc,
		DisplayKey:   s.Username,
		UniversityID: s.UniversityID,
		ProgramID:    s.ProgramID,
	}
}

func normalizeStudent(s *store.Student) Identity {
	return Identity{
		ID:           s.ID,
		Role:         RoleStudent,
		DisplayKey:   s.Username,
		UniversityID: s.UniversityID,
		ProgramID:    s.ProgramID,
	}
}

func normalizeFaculty(f *store.Faculty) Identity {
	return Identity{
		ID:           f.ID,
		Role:         RoleFaculty,
		DisplayKey:   f.EmployeeID,
		UniversityID: f.UniversityID,
		ProgramID:    f.ProgramID,
	}
}
