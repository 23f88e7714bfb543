package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"tinylink/internal/core/domain"
	"tinylink/internal/ports"
)

type HTTPHandler struct {
	service ports.LinkService
	baseURL string
	log     zerolog.Logger
}

func NewHTTPHandler(service ports.LinkService, baseURL string, log zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, baseURL: baseURL, log: log}
}

// CreateLinkRequest payload
type CreateLinkRequest struct {
	TargetURL string `json:"targetUrl"`
	Code      string `json:"code,omitempty"`
}

// Create Link
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	link, err := h.service.Register(r.Context(), req.TargetURL, req.Code)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Location", h.baseURL+"/"+link.Code)
	writeJSON(w, http.StatusCreated, link)
}

// Redirect to target URL, counting the click.
func (h *HTTPHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	target, err := h.service.Resolve(r.Context(), code)
	if errors.Is(err, domain.ErrNotFound) {
		renderNotFound(w, code)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("code", code).Msg("redirect failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}

	http.Redirect(w, r, target, http.StatusFound)
}

// List Links
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

// Get Stats for a Link
func (h *HTTPHandler) Stats(w http.ResponseWriter, r *http.Request) {
	link, err := h.service.Stats(r.Context(), r.PathValue("code"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// Delete Link
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), r.PathValue("code")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Link deleted successfully"})
}

// writeServiceError translates domain errors into stable error identifiers.
// Unknown errors are logged and surface as a generic 500 so internal detail
// never leaks to the caller.
func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingTargetURL):
		writeError(w, http.StatusBadRequest, "missing_field", "Target URL is required")
	case errors.Is(err, domain.ErrInvalidURL):
		writeError(w, http.StatusBadRequest, "invalid_url", "Invalid URL format. Must be a valid HTTP or HTTPS URL")
	case errors.Is(err, domain.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, "invalid_code", "Invalid code format. Must be 6-8 alphanumeric characters")
	case errors.Is(err, domain.ErrCodeTaken):
		writeError(w, http.StatusConflict, "code_taken", "This short code is already taken. Please choose another")
	case errors.Is(err, domain.ErrCodeExhausted):
		writeError(w, http.StatusInternalServerError, "code_exhausted", "Failed to generate unique code. Please try again")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Link not found")
	default:
		h.log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the structured error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, id, message string) {
	writeJSON(w, status, ErrorResponse{Error: id, Message: message})
}
