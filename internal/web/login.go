// ABOUTME: Login, logout, and session inspection handlers
// ABOUTME: All credential failures surface as one uniform 401; store failures as 503

package web

import (
	"errors"
	"net/http"

	"github.com/AtharvGangwar48/campus-gateway/internal/auth"
	"github.com/AtharvGangwar48/campus-gateway/internal/store"
)

// loginRequest carries the submitted credential fields. Which fields a
// strategy reads is defined by its registration: username/password for
// university, spoc, and student; employeeId/password for faculty;
// passcode for admin.
type loginRequest struct {
	Username   string `json:"username,omitempty"`
	Password   string `json:"password,omitempty"`
	EmployeeID string `json:"employeeId,omitempty"`
	Passcode   string `json:"passcode,omitempty"`
}

func (req *loginRequest) fields() map[string]string {
	return map[string]string{
		auth.FieldUsername:   req.Username,
		auth.FieldPassword:   req.Password,
		auth.FieldEmployeeID: req.EmployeeID,
		auth.FieldPasscode:   req.Passcode,
	}
}

// loginResponse is the successful login body. University is populated
// for university logins so the caller's presentation layer can mirror
// the record into its local session cache.
type loginResponse struct {
	Identity   auth.Identity     `json:"identity"`
	Token      string            `json:"token"`
	University *store.University `json:"university,omitempty"`
}

// handleLogin verifies the submitted credentials against the strategy
// named in the path and issues a session on success
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	strategy := r.PathValue("strategy")

	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity, err := s.registry.Verify(r.Context(), strategy, req.fields())
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnknownStrategy):
			writeError(w, http.StatusNotFound, "unknown login type")
		case errors.Is(err, auth.ErrStoreUnavailable):
			s.logger.Error("credential store unavailable", "strategy", strategy, "error", err)
			writeError(w, http.StatusServiceUnavailable, "temporarily unavailable, try again")
		default:
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		}
		return
	}

	token, err := s.codec.Encode(*identity)
	if err != nil {
		s.logger.Error("failed to encode session", "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	resp := loginResponse{Identity: *identity, Token: token}
	if identity.Role == auth.RoleUniversity {
		if u, err := s.store.GetUniversity(r.Context(), identity.ID); err == nil {
			u.PasswordHash = ""
			resp.University = u
		}
	}

	s.setSessionCookie(w, r, token)
	s.logger.Info("login successful", "strategy", strategy, "principal_id", identity.ID)
	writeJSON(w, http.StatusOK, resp)
}

// handleLogout clears the session cookie. The token itself simply
// expires; there is no server-side session record to destroy.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// handleMe echoes the Identity carried by the current session
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustFromContext(r.Context())
	writeJSON(w, http.StatusOK, identity)
}
