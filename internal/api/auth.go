package api

import (
	"encoding/json"
	"net/http"

	"github.com/avoronkov/hostwarden/internal/auth"
)

// loginRequest is the request body for POST /api/v1/auth/login.
type loginRequest struct {
	Login       string           `json:"login"`
	Password    string           `json:"password"`
	Fingerprint auth.Fingerprint `json:"fingerprint"`
}

// handleLogin authenticates a login/password pair and returns a session
// token bound to the requesting device. Risk rejection and credential
// mismatch are both reported as the same 401 so no detection signal leaks.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Login == "" || req.Password == "" || req.Fingerprint.DeviceID == "" {
		writeBadRequest(w, "login, password and fingerprint.device_id are required")
		return
	}

	session, err := s.auth.AuthenticateWithPassword(r.Context(), req.Login, req.Password, req.Fingerprint)
	if err != nil {
		s.logger.Error("login failed", "error", err)
		writeInternalError(w, "login failed")
		return
	}
	if session == nil {
		writeUnauthorized(w, "incorrect login or password")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// authorize resolves the caller's role from the bearer token and the
// fingerprint in the request body. On failure it writes the response
// itself and returns ok=false.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, fp auth.Fingerprint) (auth.Role, bool) {
	token := bearerToken(r)
	if token == "" {
		writeUnauthorized(w, "missing bearer token")
		return "", false
	}

	role, ok, err := s.auth.Authorize(r.Context(), token, fp)
	if err != nil {
		s.logger.Error("authorization failed", "error", err)
		writeInternalError(w, "authorization failed")
		return "", false
	}
	if !ok {
		writeUnauthorized(w, "incorrect token")
		return "", false
	}
	return role, true
}
