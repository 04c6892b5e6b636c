// ABOUTME: Strategy definitions and the read-only Registry built at startup
// ABOUTME: One strategy per principal kind binding field names, store lookup, and eligibility

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AtharvGangwar48/campus-gateway/internal/store"
)

// Verification errors
var (
	// ErrInvalidCredentials is the uniform failure for "no such
	// principal", "ineligible principal", and "wrong secret". Callers
	// must never learn which sub-case occurred.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownStrategy means a strategy name nobody registered was
	// requested. This is a caller bug, not a credential failure.
	ErrUnknownStrategy = errors.New("unknown authentication strategy")

	// ErrStoreUnavailable wraps infrastructure failures from the
	// credential store. It is not a statement about the credentials.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

// Field names used by the strategies
const (
	FieldUsername   = "username"
	FieldPassword   = "password"
	FieldEmployeeID = "employeeId"
	FieldPasscode   = "passcode"
)

// CredentialSource is the per-kind natural-key lookup contract the
// registry consumes. Implemented by store.SQLiteStore.
type CredentialSource interface {
	GetUniversityByUsername(ctx context.Context, username string) (*store.University, error)
	GetSpocByUsername(ctx context.Context, username string) (*store.Spoc, error)
	GetStudentByUsername(ctx context.Context, username string) (*store.Student, error)
	GetFacultyByEmployeeID(ctx context.Context, employeeID string) (*store.Faculty, error)
}

// AdminCredentials holds the fixed administrator passcode. The
// administrator has no backing store; the same constant is expected in
// both the key and secret fields.
type AdminCredentials struct {
	Passcode string
}

// credential pairs the identity a stored record proves with the secret
// hash needed to prove it
type credential struct {
	identity     Identity
	passwordHash string

	// ineligible carries a workflow reason this principal may not log
	// in even with correct credentials, empty when eligible
	ineligible string
}

// Strategy binds a principal kind to its submitted-field mapping, store
// lookup, and eligibility rule
type Strategy struct {
	Role        Role
	KeyField    string
	SecretField string

	find func(ctx context.Context, key string) (*credential, error)

	// eligible returns a non-empty reason if the principal may not log
	// in even with correct credentials. Only universities have one: the
	// approval status is a workflow property, so the check lives here
	// rather than in the store.
	eligible func(c *credential) string

	compare func(c *credential, secret string) bool
}

// Registry holds exactly one strategy per principal kind. It is built
// once at startup and read-only thereafter.
type Registry struct {
	strategies map[Role]*Strategy
	admin      AdminCredentials
	logger     *slog.Logger
}

// NewRegistry builds the registry over the given credential source and
// administrator constant
func NewRegistry(src CredentialSource, admin AdminCredentials) *Registry {
	r := &Registry{
		strategies: make(map[Role]*Strategy),
		admin:      admin,
		logger:     slog.Default().With("component", "auth"),
	}

	bcryptCompare := func(c *credential, secret string) bool {
		return CheckPassword(c.passwordHash, secret)
	}
	always := func(*credential) string { return "" }

	r.register(&Strategy{
		Role:        RoleAdmin,
		KeyField:    FieldPasscode,
		SecretField: FieldPasscode,
		find: func(_ context.Context, key string) (*credential, error) {
			if subtle.ConstantTimeCompare([]byte(key), []byte(admin.Passcode)) != 1 {
				return nil, store.ErrNotFound
			}
			return &credential{identity: adminIdentity(), passwordHash: ""}, nil
		},
		eligible: always,
		compare: func(_ *credential, secret string) bool {
			return subtle.ConstantTimeCompare([]byte(secret), []byte(admin.Passcode)) == 1
		},
	})

	r.register(&Strategy{
		Role:        RoleUniversity,
		KeyField:    FieldUsername,
		SecretField: FieldPassword,
		find: func(ctx context.Context, key string) (*credential, error) {
			u, err := src.GetUniversityByUsername(ctx, key)
			if err != nil {
				return nil, err
			}
			c := &credential{identity: normalizeUniversity(u), passwordHash: u.PasswordHash}
			if u.Status != store.UniversityStatusApproved {
				c.ineligible = "university status is " + string(u.Status)
			}
			return c, nil
		},
		eligible: func(c *credential) string {
			return c.ineligible
		},
		compare: bcryptCompare,
	})

	r.register(&Strategy{
		Role:        RoleSpoc,
		KeyField:    FieldUsername,
		SecretField: FieldPassword,
		find: func(ctx context.Context, key string) (*credential, error) {
			sp, err := src.GetSpocByUsername(ctx, key)
			if err != nil {
				return nil, err
			}
			return &credential{identity: normalizeSpoc(sp), passwordHash: sp.PasswordHash}, nil
		},
		eligible: always,
		compare:  bcryptCompare,
	})

	r.register(&Strategy{
		Role:        RoleStudent,
		KeyField:    FieldUsername,
		SecretField: FieldPassword,
		find: func(ctx context.Context, key string) (*credential, error) {
			st, err := src.GetStudentByUsername(ctx, key)
			if err != nil {
				return nil, err
			}
			return &credential{identity: normalizeStudent(st), passwordHash: st.PasswordHash}, nil
		},
		eligible: always,
		compare:  bcryptCompare,
	})

	r.register(&Strategy{
		Role:        RoleFaculty,
		KeyField:    FieldEmployeeID,
		SecretField: FieldPassword,
		find: func(ctx context.Context, key string) (*credential, error) {
			f, err := src.GetFacultyByEmployeeID(ctx, key)
			if err != nil {
				return nil, err
			}
			return &credential{identity: normalizeFaculty(f), passwordHash: f.PasswordHash}, nil
		},
		eligible: always,
		compare:  bcryptCompare,
	})

	return r
}

func (r *Registry) register(s *Strategy) {
	r.strategies[s.Role] = s
}

// Strategies returns the registered strategy names
func (r *Registry) Strategies() []string {
	names := make([]string, 0, len(r.strategies))
	for role := range r.strategies {
		names = append(names, string(role))
	}
	return names
}

// Validate checks the registry is complete and well-formed. Called once
// at startup; a failure here halts the process.
func (r *Registry) Validate() error {
	if r.admin.Passcode == "" {
		return fmt.Errorf("auth.admin_passcode is required")
	}

	for _, role := range []Role{RoleAdmin, RoleUniversity, RoleSpoc, RoleStudent, RoleFaculty} {
		s, ok := r.strategies[role]
		if !ok {
			return fmt.Errorf("strategy %q is not registered", role)
		}
		if s.KeyField == "" || s.SecretField == "" {
			return fmt.Errorf("strategy %q has a malformed field mapping", role)
		}
		if s.find == nil || s.eligible == nil || s.compare == nil {
			return fmt.Errorf("strategy %q is missing a handler", role)
		}
	}

	return nil
}
