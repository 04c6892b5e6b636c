// ABOUTME: Shared test helpers for store tests
// ABOUTME: Creates a temporary SQLite store per test with cleanup

package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func testUniversity(id, username string) *University {
	now := time.Now().UTC()
	return &University{
		ID:           id,
		Username:     username,
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Name:         "Test University",
		Email:        username + "@example.edu",
		Status:       UniversityStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
