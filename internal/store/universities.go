// ABOUTME: University store methods for registration, lookup, and approval workflow
// ABOUTME: Universities self-register as pending and are approved or rejected by an admin

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateUniversity inserts a new university record. New registrations
// default to pending status when none is set.
func (s *SQLiteStore) CreateUniversity(ctx context.Context, u *University) error {
	if u.Status == "" {
		u.Status = UniversityStatusPending
	}

	query := `
		INSERT INTO universities (id, username, password_hash, name, email, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		u.ID,
		u.Username,
		u.PasswordHash,
		u.Name,
		u.Email,
		string(u.Status),
		u.CreatedAt.UTC().Format(time.RFC3339),
		u.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("creating university: %w", err)
	}

	return nil
}

// GetUniversity retrieves a university by ID
func (s *SQLiteStore) GetUniversity(ctx context.Context, id string) (*University, error) {
	query := `
		SELECT id, username, password_hash, name, email, status, created_at, updated_at
		FROM universities WHERE id = ?
	`
	return s.scanUniversity(s.db.QueryRowContext(ctx, query, id))
}

// GetUniversityByUsername retrieves a university by its login username
func (s *SQLiteStore) GetUniversityByUsername(ctx context.Context, username string) (*University, error) {
	query := `
		SELECT id, username, password_hash, name, email, status, created_at, updated_at
		FROM universities WHERE username = ?
	`
	return s.scanUniversity(s.db.QueryRowContext(ctx, query, username))
}

// UpdateUniversityStatus transitions a university between approval states
func (s *SQLiteStore) UpdateUniversityStatus(ctx context.Context, id string, status UniversityStatus) error {
	query := `UPDATE universities SET status = ?, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		string(status),
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating university status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListUniversities returns universities matching the filter, newest first
func (s *SQLiteStore) ListUniversities(ctx context.Context, filter UniversityFilter) ([]*University, error) {
	query := `
		SELECT id, username, password_hash, name, email, status, created_at, updated_at
		FROM universities
	`
	args := []any{}
	if filter.Status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing universities: %w", err)
	}
	defer rows.Close()

	var universities []*University
	for rows.Next() {
		u, err := s.scanUniversity(rows)
		if err != nil {
			return nil, err
		}
		universities = append(universities, u)
	}

	return universities, rows.Err()
}

// rowScanner abstracts sql.Row and sql.Rows for shared scan logic
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanUniversity(row rowScanner) (*University, error) {
	var u University
	var status, createdAt, updatedAt string

	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Email, &status, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning university: %w", err)
	}

	u.Status = UniversityStatus(status)
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	u.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &u, nil
}
