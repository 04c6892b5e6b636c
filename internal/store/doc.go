// Package store provides persistent storage for campus-gateway using SQLite.
//
// # Architecture
//
// The Store interface exposes per-principal-kind lookup by natural key
// (username for universities, SPOCs, and students; employee id for faculty)
// plus the account-provisioning writes the onboarding workflow needs.
// SQLiteStore implements the interface in a single struct.
//
// # Data Models
//
//   - University: self-registered account with an approval status
//     (pending, approved, rejected)
//   - Spoc: single point of contact scoped to a university and program
//   - Student: student account scoped to a university and program
//   - Faculty: faculty account keyed by employee id
//
// Passwords are stored only as bcrypt hashes; the store never sees or
// returns a plaintext secret.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// # Error Handling
//
// Common errors:
//
//   - ErrNotFound: requested record does not exist
//   - ErrDuplicateKey: natural key already taken within its table
//
// All methods accept context.Context for cancellation support.
package store
