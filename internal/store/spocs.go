// ABOUTME: SPOC store methods for account creation and username lookup
// ABOUTME: SPOCs are provisioned by a university for a specific program

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateSpoc inserts a new SPOC account
func (s *SQLiteStore) CreateSpoc(ctx context.Context, sp *Spoc) error {
	query := `
		INSERT INTO spocs (id, username, password_hash, university_id, program_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		sp.ID,
		sp.Username,
		sp.PasswordHash,
		sp.UniversityID,
		sp.ProgramID,
		sp.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("creating spoc: %w", err)
	}

	return nil
}

// GetSpocByUsername retrieves a SPOC by its login username
func (s *SQLiteStore) GetSpocByUsername(ctx context.Context, username string) (*Spoc, error) {
	query := `
		SELECT id, username, password_hash, university_id, program_id, created_at
		FROM spocs WHERE username = ?
	`

	var sp Spoc
	var createdAt string
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&sp.ID, &sp.Username, &sp.PasswordHash, &sp.UniversityID, &sp.ProgramID, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting spoc: %w", err)
	}

	sp.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &sp, nil
}
