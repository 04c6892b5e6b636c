// ABOUTME: University self-registration and admin approval workflow handlers
// ABOUTME: New universities start pending; only approved ones can authenticate

package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/AtharvGangwar48/campus-gateway/internal/auth"
	"github.com/AtharvGangwar48/campus-gateway/internal/store"
)

type universityRegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// handleUniversityRegister creates a pending university account
func (s *Server) handleUniversityRegister(w http.ResponseWriter, r *http.Request) {
	var req universityRegisterRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !usernameRegex.MatchString(req.Username) {
		writeError(w, http.StatusBadRequest, "username must be 3-32 characters, letters, digits, underscores")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	now := time.Now().UTC()
	u := &store.University{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Email:        req.Email,
		Status:       store.UniversityStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUniversity(r.Context(), u); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			writeError(w, http.StatusConflict, "username already taken")
			return
		}
		s.logger.Error("failed to create university", "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	s.logger.Info("university registered", "id", u.ID, "username", u.Username)
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":     u.ID,
		"status": string(u.Status),
	})
}

// handleUniversityList returns universities, optionally filtered by
// ?status=pending|approved|rejected
func (s *Server) handleUniversityList(w http.ResponseWriter, r *http.Request) {
	filter := store.UniversityFilter{}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := store.UniversityStatus(raw)
		switch status {
		case store.UniversityStatusPending, store.UniversityStatusApproved, store.UniversityStatusRejected:
			filter.Status = &status
		default:
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
	}

	universities, err := s.store.ListUniversities(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to list universities", "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	for _, u := range universities {
		u.PasswordHash = ""
	}
	writeJSON(w, http.StatusOK, universities)
}

// handleUniversityApprove transitions a university to approved
func (s *Server) handleUniversityApprove(w http.ResponseWriter, r *http.Request) {
	s.updateUniversityStatus(w, r, store.UniversityStatusApproved)
}

// handleUniversityReject transitions a university to rejected
func (s *Server) handleUniversityReject(w http.ResponseWriter, r *http.Request) {
	s.updateUniversityStatus(w, r, store.UniversityStatusRejected)
}

func (s *Server) updateUniversityStatus(w http.ResponseWriter, r *http.Request, status store.UniversityStatus) {
	id := r.PathValue("id")

	if err := s.store.UpdateUniversityStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "university not found")
			return
		}
		s.logger.Error("failed to update university status", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	actor := auth.MustFromContext(r.Context())
	s.logger.Info("university status updated", "id", id, "status", string(status), "by", actor.ID)
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(status)})
}
