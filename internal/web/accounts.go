// ABOUTME: Provisioning handlers for SPOC, student, and faculty accounts
// ABOUTME: University callers are scoped to their own university id

package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/AtharvGangwar48/campus-gateway/internal/auth"
	"github.com/AtharvGangwar48/campus-gateway/internal/store"
)

type accountCreateRequest struct {
	Username     string `json:"username,omitempty"`
	EmployeeID   string `json:"employeeId,omitempty"`
	Password     string `json:"password"`
	UniversityID string `json:"universityId,omitempty"`
	ProgramID    string `json:"programId"`
}

// resolveUniversityID returns the university the new account belongs to.
// Admins may name any university; university and SPOC callers are pinned
// to their own.
func resolveUniversityID(identity *auth.Identity, requested string) (string, string) {
	if identity.Role == auth.RoleAdmin {
		if requested == "" {
			return "", "universityId is required"
		}
		return requested, ""
	}
	if requested != "" && requested != identity.UniversityID {
		return "", "cannot create accounts for another university"
	}
	return identity.UniversityID, ""
}

func (s *Server) hashAccountPassword(w http.ResponseWriter, password string) (string, bool) {
	if len(password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return "", false
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return "", false
	}
	return hash, true
}

// handleSpocCreate provisions a SPOC account
func (s *Server) handleSpocCreate(w http.ResponseWriter, r *http.Request) {
	var req accountCreateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !usernameRegex.MatchString(req.Username) {
		writeError(w, http.StatusBadRequest, "invalid username")
		return
	}
	if req.ProgramID == "" {
		writeError(w, http.StatusBadRequest, "programId is required")
		return
	}

	identity := auth.MustFromContext(r.Context())
	universityID, errMsg := resolveUniversityID(identity, req.UniversityID)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	hash, ok := s.hashAccountPassword(w, req.Password)
	if !ok {
		return
	}

	sp := &store.Spoc{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		UniversityID: universityID,
		ProgramID:    req.ProgramID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateSpoc(r.Context(), sp); err != nil {
		s.writeCreateError(w, err, "spoc")
		return
	}

	s.logger.Info("spoc created", "id", sp.ID, "university_id", universityID, "by", identity.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": sp.ID})
}

// handleStudentCreate provisions a student account
func (s *Server) handleStudentCreate(w http.ResponseWriter, r *http.Request) {
	var req accountCreateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !usernameRegex.MatchString(req.Username) {
		writeError(w, http.StatusBadRequest, "invalid username")
		return
	}
	if req.ProgramID == "" {
		writeError(w, http.StatusBadRequest, "programId is required")
		return
	}

	identity := auth.MustFromContext(r.Context())
	universityID, errMsg := resolveUniversityID(identity, req.UniversityID)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	hash, ok := s.hashAccountPassword(w, req.Password)
	if !ok {
		return
	}

	st := &store.Student{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		UniversityID: universityID,
		ProgramID:    req.ProgramID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateStudent(r.Context(), st); err != nil {
		s.writeCreateError(w, err, "student")
		return
	}

	s.logger.Info("student created", "id", st.ID, "university_id", universityID, "by", identity.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": st.ID})
}

// handleFacultyCreate provisions a faculty account keyed by employee id
func (s *Server) handleFacultyCreate(w http.ResponseWriter, r *http.Request) {
	var req accountCreateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "employeeId is required")
		return
	}
	if req.ProgramID == "" {
		writeError(w, http.StatusBadRequest, "programId is required")
		return
	}

	identity := auth.MustFromContext(r.Context())
	universityID, errMsg := resolveUniversityID(identity, req.UniversityID)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	hash, ok := s.hashAccountPassword(w, req.Password)
	if !ok {
		return
	}

	f := &store.Faculty{
		ID:           uuid.NewString(),
		EmployeeID:   req.EmployeeID,
		PasswordHash: hash,
		UniversityID: universityID,
		ProgramID:    req.ProgramID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateFaculty(r.Context(), f); err != nil {
		s.writeCreateError(w, err, "faculty")
		return
	}

	s.logger.Info("faculty created", "id", f.ID, "university_id", universityID, "by", identity.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": f.ID})
}

func (s *Server) writeCreateError(w http.ResponseWriter, err error, kind string) {
	if errors.Is(err, store.ErrDuplicateKey) {
		writeError(w, http.StatusConflict, "identifier already taken")
		return
	}
	s.logger.Error("failed to create account", "kind", kind, "error", err)
	writeError(w, http.StatusInternalServerError, "an error occurred")
}
