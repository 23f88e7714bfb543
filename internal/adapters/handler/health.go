package handler

import (
	"net/http"
	"time"

	"tinylink/internal/ports"
)

const version = "1.0"

// HealthHandler reports liveness plus store connectivity. The start time is
// captured once at process start and injected, not read from a global.
type HealthHandler struct {
	repo      ports.LinkRepository
	startedAt time.Time
}

func NewHealthHandler(repo ports.LinkRepository, startedAt time.Time) *HealthHandler {
	return &HealthHandler{repo: repo, startedAt: startedAt}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"ok":      false,
			"version": version,
			"error":   "Health check failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"version":   version,
		"uptime":    int64(time.Since(h.startedAt).Seconds()),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
