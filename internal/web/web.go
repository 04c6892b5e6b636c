// ABOUTME: HTTP transport for campus-gateway authentication and onboarding
// ABOUTME: Provides login/logout/session routes plus the university approval workflow

package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/AtharvGangwar48/campus-gateway/internal/auth"
	"github.com/AtharvGangwar48/campus-gateway/internal/store"
)

// SessionCookieName is the name of the session cookie
const SessionCookieName = "campus_session"

// Username validation regex: alphanumeric + underscores, 3-32 characters
var usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{2,31}$`)

// Server handles the authentication and account-management routes
type Server struct {
	store      store.Store
	registry   *auth.Registry
	codec      *auth.SessionCodec
	sessionTTL time.Duration
	logger     *slog.Logger
}

// New creates a new web server over the given store, strategy registry,
// and session codec
func New(st store.Store, registry *auth.Registry, codec *auth.SessionCodec, sessionTTL time.Duration) *Server {
	return &Server{
		store:      st,
		registry:   registry,
		codec:      codec,
		sessionTTL: sessionTTL,
		logger:     slog.Default().With("component", "web"),
	}
}

// RegisterRoutes registers all routes on the given mux
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Authentication (public)
	mux.HandleFunc("POST /auth/{strategy}/login", s.handleLogin)
	mux.HandleFunc("POST /auth/logout", s.handleLogout)
	mux.HandleFunc("GET /auth/me", s.requireAuth(s.handleMe))

	// University onboarding and approval workflow
	mux.HandleFunc("POST /universities", s.handleUniversityRegister)
	mux.HandleFunc("GET /universities", s.requireRole(s.handleUniversityList, auth.RoleAdmin))
	mux.HandleFunc("POST /universities/{id}/approve", s.requireRole(s.handleUniversityApprove, auth.RoleAdmin))
	mux.HandleFunc("POST /universities/{id}/reject", s.requireRole(s.handleUniversityReject, auth.RoleAdmin))

	// Account provisioning
	mux.HandleFunc("POST /spocs", s.requireRole(s.handleSpocCreate, auth.RoleAdmin, auth.RoleUniversity))
	mux.HandleFunc("POST /students", s.requireRole(s.handleStudentCreate, auth.RoleAdmin, auth.RoleUniversity, auth.RoleSpoc))
	mux.HandleFunc("POST /faculty", s.requireRole(s.handleFacultyCreate, auth.RoleAdmin, auth.RoleUniversity))

	s.logger.Info("routes registered")
}

// requireAuth wraps a handler to require a valid session. The decoded
// Identity is attached to the request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := s.identityFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		next(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	}
}

// requireRole wraps a handler to require a valid session with one of the
// given roles
func (s *Server) requireRole(next http.HandlerFunc, roles ...auth.Role) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		identity := auth.MustFromContext(r.Context())
		for _, role := range roles {
			if identity.Role == role {
				next(w, r)
				return
			}
		}
		writeError(w, http.StatusForbidden, "insufficient role")
	})
}

// identityFromRequest decodes the session from the cookie or, for
// non-browser clients, a bearer Authorization header. A malformed
// session reads as no session.
func (s *Server) identityFromRequest(r *http.Request) (*auth.Identity, error) {
	token := ""
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		token = cookie.Value
	} else if h := r.Header.Get("Authorization"); len(h) > 7 && h[:7] == "Bearer " {
		token = h[7:]
	}
	if token == "" {
		return nil, auth.ErrNoSession
	}
	return s.codec.Decode(token)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.sessionTTL),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes a small JSON request body into v
func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
