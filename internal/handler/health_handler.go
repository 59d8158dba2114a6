package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Checker is a dependency that can report whether it is reachable
type Checker interface {
	Health(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	checks map[string]Checker
	logger *slog.Logger
}

// NewHealthHandler creates a health handler over the named dependencies.
// A nil checker is reported as not configured.
func NewHealthHandler(checks map[string]Checker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:   "healthy",
		Services: make(map[string]string, len(h.checks)),
	}

	for name, check := range h.checks {
		if check == nil {
			response.Services[name] = "not_configured"
			continue
		}
		if err := check.Health(ctx); err != nil {
			h.logger.Error("health check failed",
				slog.String("service", name),
				slog.String("error", err.Error()),
			)
			response.Status = "unhealthy"
			response.Services[name] = "unhealthy"
			continue
		}
		response.Services[name] = "healthy"
	}

	if response.Status == "healthy" {
		respondSuccess(w, response)
	} else {
		respondJSON(w, http.StatusServiceUnavailable, response)
	}
}
