package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"tinylink/internal/config"
	"tinylink/internal/ports"
)

// NewRouter creates and configures the main application router.
func NewRouter(cfg *config.Config, service ports.LinkService, repo ports.LinkRepository, log zerolog.Logger, startedAt time.Time) http.Handler {
	h := NewHTTPHandler(service, cfg.BaseURL, log)
	health := NewHealthHandler(repo, startedAt)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", health.Check)

	mux.HandleFunc("POST /api/links", h.Create)
	mux.HandleFunc("GET /api/links", h.List)
	mux.HandleFunc("GET /api/links/{code}", h.Stats)
	mux.HandleFunc("DELETE /api/links/{code}", h.Delete)

	// Registered last in reading order, but the mux prefers the more
	// specific patterns above for /healthz and /api/.
	mux.HandleFunc("GET /{code}", h.Redirect)

	return RequestLogger(log)(mux)
}
