package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avoronkov/hostwarden/internal/auth"
)

// registerRequest is the request body for POST /api/v1/users.
type registerRequest struct {
	Login       string           `json:"login"`
	Password    string           `json:"password"`
	Admin       bool             `json:"admin"`
	Fingerprint auth.Fingerprint `json:"fingerprint"`
}

// handleRegisterUser creates a new account. Admin-only: the requester's
// token and fingerprint must resolve to the admin role first.
func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Login == "" || req.Password == "" {
		writeBadRequest(w, "login and password are required")
		return
	}

	role, ok := s.authorize(w, r, req.Fingerprint)
	if !ok {
		return
	}
	if role != auth.RoleAdmin {
		writeForbidden(w, "not enough rights")
		return
	}

	newRole := auth.RoleUser
	if req.Admin {
		newRole = auth.RoleAdmin
	}

	if err := s.auth.RegisterUser(r.Context(), req.Login, req.Password, newRole); err != nil {
		if errors.Is(err, auth.ErrLoginExists) {
			writeConflict(w, "login already registered")
			return
		}
		s.logger.Error("user registration failed", "error", err)
		writeInternalError(w, "registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"login": req.Login,
		"role":  newRole,
	})
}
