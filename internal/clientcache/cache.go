// ABOUTME: Best-effort local cache of the last known Identity for client rehydration
// ABOUTME: Tolerates missing or corrupt files; a later Save or Clear self-heals the storage

package clientcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/AtharvGangwar48/campus-gateway/internal/auth"
	"github.com/AtharvGangwar48/campus-gateway/internal/store"
)

// Entry is what the cache persists: the last Identity, the session token
// issued for it, and the originating University record when the identity
// belongs to a university.
type Entry struct {
	Identity   auth.Identity     `json:"identity"`
	Token      string            `json:"token,omitempty"`
	University *store.University `json:"university,omitempty"`
}

// Cache mirrors the last successful login to a local JSON file so a
// client can rehydrate its authentication state without a round trip.
// It is never authoritative: the server-side session codec still
// validates every request.
type Cache struct {
	path   string
	logger *slog.Logger
}

// New creates a cache backed by the given file path
func New(path string) *Cache {
	return &Cache{
		path:   path,
		logger: slog.Default().With("component", "clientcache"),
	}
}

// DefaultPath returns the cache file location under the user's data dir.
// Priority: XDG_DATA_HOME/campus/session.json > ~/.local/share/campus/session.json
func DefaultPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "session.json" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "campus", "session.json")
}

// Save persists the entry, replacing whatever was stored before
func (c *Cache) Save(entry *Entry) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	// 0600: the token grants access as the cached identity
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}

	return nil
}

// Load returns the cached entry, or nil when nothing usable is stored.
// Malformed data is treated the same as an absent file and never returns
// an error; the broken file is removed so the cache heals itself.
func (c *Cache) Load() (*Entry, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cache file: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("discarding corrupt session cache", "path", c.path, "error", err)
		_ = os.Remove(c.path)
		return nil, nil
	}

	if !entry.Identity.Role.Valid() {
		c.logger.Warn("discarding session cache with unknown role", "role", entry.Identity.Role)
		_ = os.Remove(c.path)
		return nil, nil
	}

	return &entry, nil
}

// Clear removes the cached entry. Clearing an empty cache is not an error.
func (c *Cache) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing cache file: %w", err)
	}
	return nil
}
