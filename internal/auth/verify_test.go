// ABOUTME: Tests for the verification pipeline across all five strategies
// ABOUTME: Covers uniform failure collapse, eligibility, and store failure propagation

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AtharvGangwar48/campus-gateway/internal/store"
)

const testAdminPasscode = "letmein-admin"

// fakeSource is an in-memory CredentialSource for pipeline tests
type fakeSource struct {
	universities map[string]*store.University
	spocs        map[string]*store.Spoc
	students     map[string]*store.Student
	faculty      map[string]*store.Faculty

	// err, when set, makes every lookup fail with it
	err error
}

func (f *fakeSource) GetUniversityByUsername(_ context.Context, username string) (*store.University, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.universities[username]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeSource) GetSpocByUsername(_ context.Context, username string) (*store.Spoc, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.spocs[username]; ok {
		return s, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeSource) GetStudentByUsername(_ context.Context, username string) (*store.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.students[username]; ok {
		return s, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeSource) GetFacultyByEmployeeID(_ context.Context, employeeID string) (*store.Faculty, error) {
	if f.err != nil {
		return nil, f.err
	}
	if fac, ok := f.faculty[employeeID]; ok {
		return fac, nil
	}
	return nil, store.ErrNotFound
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	// MinCost keeps the test suite fast
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func setupRegistry(t *testing.T) (*Registry, *fakeSource) {
	t.Helper()
	src := &fakeSource{
		universities: map[string]*store.University{
			"uniX": {ID: "U1", Username: "uniX", PasswordHash: mustHash(t, "uni-pass"), Status: store.UniversityStatusApproved},
		},
		spocs: map[string]*store.Spoc{
			"spoc1": {ID: "S1", Username: "spoc1", PasswordHash: mustHash(t, "spoc-pass"), UniversityID: "U1", ProgramID: "P1"},
		},
		students: map[string]*store.Student{
			"jdoe": {ID: "ST1", Username: "jdoe", PasswordHash: mustHash(t, "stu-pass"), UniversityID: "U1", ProgramID: "P1"},
		},
		faculty: map[string]*store.Faculty{
			"F100": {ID: "FA1", EmployeeID: "F100", PasswordHash: mustHash(t, "fac-pass"), UniversityID: "U1", ProgramID: "P2"},
		},
	}
	return NewRegistry(src, AdminCredentials{Passcode: testAdminPasscode}), src
}

func TestVerify_AllStrategies_RoleMatchesStrategyName(t *testing.T) {
	registry, _ := setupRegistry(t)
	ctx := context.Background()

	tests := []struct {
		strategy string
		fields   map[string]string
	}{
		{"admin", map[string]string{"passcode": testAdminPasscode}},
		{"university", map[string]string{"username": "uniX", "password": "uni-pass"}},
		{"spoc", map[string]string{"username": "spoc1", "password": "spoc-pass"}},
		{"student", map[string]string{"username": "jdoe", "password": "stu-pass"}},
		{"faculty", map[string]string{"employeeId": "F100", "password": "fac-pass"}},
	}

	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			identity, err := registry.Verify(ctx, tt.strategy, tt.fields)
			require.NoError(t, err)
			assert.Equal(t, Role(tt.strategy), identity.Role)
		})
	}
}

func TestVerify_Admin_FixedConstant(t *testing.T) {
	registry, _ := setupRegistry(t)

	identity, err := registry.Verify(context.Background(), "admin", map[string]string{
		"passcode": testAdminPasscode,
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", identity.ID)
	assert.Equal(t, RoleAdmin, identity.Role)
	assert.Equal(t, "admin", identity.DisplayKey)
	assert.Empty(t, identity.UniversityID)
	assert.Empty(t, identity.ProgramID)
}

func TestVerify_Admin_WrongPasscode(t *testing.T) {
	registry, _ := setupRegistry(t)

	_, err := registry.Verify(context.Background(), "admin", map[string]string{
		"passcode": "guess",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_Faculty_ScopingAttributes(t *testing.T) {
	registry, _ := setupRegistry(t)

	identity, err := registry.Verify(context.Background(), "faculty", map[string]string{
		"employeeId": "F100",
		"password":   "fac-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "FA1", identity.ID)
	assert.Equal(t, RoleFaculty, identity.Role)
	assert.Equal(t, "F100", identity.DisplayKey)
	assert.Equal(t, "U1", identity.UniversityID)
	assert.Equal(t, "P2", identity.ProgramID)
}

func TestVerify_University_DisplayKeyAndScope(t *testing.T) {
	registry, _ := setupRegistry(t)

	identity, err := registry.Verify(context.Background(), "university", map[string]string{
		"username": "uniX",
		"password": "uni-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "U1", identity.ID)
	assert.Equal(t, "uniX", identity.DisplayKey)
	assert.Equal(t, "U1", identity.UniversityID)
	assert.Empty(t, identity.ProgramID)
}

func TestVerify_University_PendingFailsDespiteCorrectPassword(t *testing.T) {
	registry, src := setupRegistry(t)
	src.universities["uniX"].Status = store.UniversityStatusPending

	_, err := registry.Verify(context.Background(), "university", map[string]string{
		"username": "uniX",
		"password": "uni-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_University_RejectedFailsDespiteCorrectPassword(t *testing.T) {
	registry, src := setupRegistry(t)
	src.universities["uniX"].Status = store.UniversityStatusRejected

	_, err := registry.Verify(context.Background(), "university", map[string]string{
		"username": "uniX",
		"password": "uni-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_WrongSecretAndUnknownKey_Indistinguishable(t *testing.T) {
	registry, _ := setupRegistry(t)
	ctx := context.Background()

	_, errWrongSecret := registry.Verify(ctx, "student", map[string]string{
		"username": "jdoe",
		"password": "wrong",
	})
	_, errUnknownKey := registry.Verify(ctx, "student", map[string]string{
		"username": "ghost",
		"password": "stu-pass",
	})

	assert.ErrorIs(t, errWrongSecret, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownKey, ErrInvalidCredentials)
	assert.Equal(t, errWrongSecret, errUnknownKey, "callers must not be able to tell the cases apart")
}

func TestVerify_MissingFields(t *testing.T) {
	registry, _ := setupRegistry(t)

	_, err := registry.Verify(context.Background(), "student", map[string]string{
		"username": "jdoe",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_UnknownStrategy(t *testing.T) {
	registry, _ := setupRegistry(t)

	_, err := registry.Verify(context.Background(), "superuser", map[string]string{
		"username": "x", "password": "y",
	})
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_StoreFailure_NotCollapsedIntoInvalidCredentials(t *testing.T) {
	registry, src := setupRegistry(t)
	src.err = errors.New("connection refused")

	_, err := registry.Verify(context.Background(), "student", map[string]string{
		"username": "jdoe",
		"password": "stu-pass",
	})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_ConcurrentCalls(t *testing.T) {
	registry, _ := setupRegistry(t)
	ctx := context.Background()

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := registry.Verify(ctx, "student", map[string]string{
				"username": "jdoe",
				"password": "stu-pass",
			})
			done <- err
		}()
	}

	for i := 0; i < 10; i++ {
		assert.NoError(t, <-done)
	}
}

func TestRegistry_Validate(t *testing.T) {
	registry, _ := setupRegistry(t)

	err := registry.Validate()
	assert.NoError(t, err)
}

func TestRegistry_Validate_EmptyPasscode(t *testing.T) {
	registry := NewRegistry(&fakeSource{}, AdminCredentials{})

	err := registry.Validate()
	assert.Error(t, err)
}

func TestRegistry_Validate_MissingStrategy(t *testing.T) {
	registry, _ := setupRegistry(t)
	delete(registry.strategies, RoleFaculty)

	err := registry.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "faculty")
}
