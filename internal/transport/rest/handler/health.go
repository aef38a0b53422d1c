package handler

import (
	"context"
	"net/http"
)

// HealthHandler reports whether the survey store can be reached
type HealthHandler struct {
	backend string
	ping    func(ctx context.Context) error
}

// NewHealthHandler creates a new health handler. ping may be nil for stores
// that are always reachable.
func NewHealthHandler(backend string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{backend: backend, ping: ping}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, code, map[string]string{
		"status":  status,
		"storage": h.backend,
	})
}
