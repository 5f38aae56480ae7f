package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/setuprelay/setuprelay/internal/handler/dto"
)

// ServiceName identifies this service in health responses.
const ServiceName = "setup-wizard"

// HealthChecker defines an interface for checking a dependency's health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	cache HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for cache if Redis is not configured.
func NewHealthHandler(cache HealthChecker) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// Health is the liveness endpoint. It always reports healthy while the
// process accepts connections, independent of mail transport or Redis state.
//
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   ServiceName,
	})
}

// readyzResponse reports dependency checks for readiness probes.
type readyzResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Readyz is a readiness probe endpoint. The only hard dependency is Redis
// (rate limiting), and only when it is configured.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			checks["redis"] = "error: " + err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "not configured"
	}

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, readyzResponse{
		Status: status,
		Checks: checks,
	})
}
