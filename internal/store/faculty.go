// ABOUTME: Faculty store methods for account creation and employee-id lookup
// ABOUTME: Faculty authenticate by employee id rather than username

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateFaculty inserts a new faculty account
func (s *SQLiteStore) CreateFaculty(ctx context.Context, f *Faculty) error {
	query := `
		INSERT INTO faculty (id, employee_id, password_hash, university_id, program_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		f.ID,
		f.EmployeeID,
		f.PasswordHash,
		f.UniversityID,
		f.ProgramID,
		f.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("creating faculty: %w", err)
	}

	return nil
}

// GetFacultyByEmployeeID retrieves a faculty member by employee id
func (s *SQLiteStore) GetFacultyByEmployeeID(ctx context.Context, employeeID string) (*Faculty, error) {
	query := `
		SELECT id, employee_id, password_hash, university_id, program_id, created_at
		FROM faculty WHERE employee_id = ?
	`

	var f Faculty
	var createdAt string
	err := s.db.QueryRowContext(ctx, query, employeeID).Scan(
		&f.ID, &f.EmployeeID, &f.PasswordHash, &f.UniversityID, &f.ProgramID, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting faculty: %w", err)
	}

	f.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &f, nil
}
