// ABOUTME: Student store methods for account creation and username lookup
// ABOUTME: Students are provisioned under a university and program

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateStudent inserts a new student account
func (s *SQLiteStore) CreateStudent(ctx context.Context, st *Student) error {
	query := `
		INSERT INTO students (id, username, password_hash, university_id, program_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		st.ID,
		st.Username,
		st.PasswordHash,
		st.UniversityID,
		st.ProgramID,
		st.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("creating student: %w", err)
	}

	return nil
}

// GetStudentByUsername retrieves a student by its login username
func (s *SQLiteStore) GetStudentByUsername(ctx context.Context, username string) (*Student, error) {
	query := `
		SELECT id, username, password_hash, university_id, program_id, created_at
		FROM students WHERE username = ?
	`

	var st Student
	var createdAt string
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&st.ID, &st.Username, &st.PasswordHash, &st.UniversityID, &st.ProgramID, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting student: %w", err)
	}

	st.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &st, nil
}
