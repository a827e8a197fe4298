package api

import (
	"encoding/json"
	"net/http"

	"github.com/avoronkov/hostwarden/internal/auth"
	"github.com/avoronkov/hostwarden/internal/sysinfo"
)

// handleSystemInfo returns the host telemetry snapshot. Any
// authenticated role may read it; the body carries the fingerprint the
// token must be bound to.
func (s *Server) handleSystemInfo(w http.ResponseWriter, r *http.Request) {
	var fp auth.Fingerprint
	if err := json.NewDecoder(r.Body).Decode(&fp); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if _, ok := s.authorize(w, r, fp); !ok {
		return
	}

	writeJSON(w, http.StatusOK, sysinfo.Collect())
}
