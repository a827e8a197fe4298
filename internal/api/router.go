package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avoronkov/hostwarden/internal/webui"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Health check (no auth required)
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Get("/metrics", s.handleMetrics)

		// Token-protected operations. Authorization happens inside the
		// handlers: the device fingerprint travels in the request body
		// and must be checked together with the bearer token.
		r.Post("/users", s.handleRegisterUser)
		r.Post("/system/info", s.handleSystemInfo)
	})

	// Static admin page (embedded, with optional dev override)
	r.Handle("/*", webui.Handler(s.cfg.WebDir))

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, ErrCodeInternal, "database unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
