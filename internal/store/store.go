// ABOUTME: Store interface and data types for campus-gateway persistence
// ABOUTME: Defines the five principal record types and the natural-key lookup contract

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateKey is returned when a natural key (username, employee id)
// is already taken within its table
var ErrDuplicateKey = errors.New("duplicate natural key")

// UniversityStatus represents the approval state of a university account
type UniversityStatus string

const (
	UniversityStatusPending  UniversityStatus = "pending"
	UniversityStatusApproved UniversityStatus = "approved"
	UniversityStatusRejected UniversityStatus = "rejected"
)

// University represents a registered university account.
// Universities self-register and stay in "pending" until an administrator
// approves them; only approved universities can log in.
type University struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash
	Name         string
	Email        string
	Status       UniversityStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Spoc represents a single-point-of-contact account scoped to a
// university and a program
type Spoc struct {
	ID           string
	Username     string
	PasswordHash string
	UniversityID string
	ProgramID    string
	CreatedAt    time.Time
}

// Student represents a student account scoped to a university and a program
type Student struct {
	ID           string
	Username     string
	PasswordHash string
	UniversityID string
	ProgramID    string
	CreatedAt    time.Time
}

// Faculty represents a faculty account. Faculty log in with their
// employee id rather than a username.
type Faculty struct {
	ID           string
	EmployeeID   string
	PasswordHash string
	UniversityID string
	ProgramID    string
	CreatedAt    time.Time
}

// UniversityFilter narrows ListUniversities results
type UniversityFilter struct {
	Status *UniversityStatus
}

// Store defines the interface for principal persistence
type Store interface {
	// Universities
	CreateUniversity(ctx context.Context, u *University) error
	GetUniversity(ctx context.Context, id string) (*University, error)
	GetUniversityByUsername(ctx context.Context, username string) (*University, error)
	UpdateUniversityStatus(ctx context.Context, id string, status UniversityStatus) error
	ListUniversities(ctx context.Context, filter UniversityFilter) ([]*University, error)

	// SPOCs
	CreateSpoc(ctx context.Context, s *Spoc) error
	GetSpocByUsername(ctx context.Context, username string) (*Spoc, error)

	// Students
	CreateStudent(ctx context.Context, s *Student) error
	GetStudentByUsername(ctx context.Context, username string) (*Student, error)

	// Faculty
	CreateFaculty(ctx context.Context, f *Faculty) error
	GetFacultyByEmployeeID(ctx context.Context, employeeID string) (*Faculty, error)

	// Close releases any resources held by the store
	Close() error
}
