package http

import (
	"net/http"
	"time"

	"github.com/brightpath/student-portal-api/internal/application"
	"github.com/brightpath/student-portal-api/internal/ports"
)

// Handler is the HTTP adapter entrypoint for portal use-cases.
// Keeping only application dependencies here preserves clean adapter boundaries.
type Handler struct {
	service *application.Service
	tokens  ports.TokenVerifier
}

// NewHandler constructs an HTTP handler bound to the application service.
// The verifier is optional; without it protected routes accept any bearer
// token and forward it to the backend, which remains the authority.
func NewHandler(service *application.Service, tokens ports.TokenVerifier) *Handler {
	return &Handler{service: service, tokens: tokens}
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": serviceName,
		"ts":      time.Now().UTC(),
	})
}

func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ready": true})
}
