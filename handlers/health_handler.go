package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
)

// PingFunc checks one dependency.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]PingFunc
	clock  clockwork.Clock
}

func NewHealthHandler(checks map[string]PingFunc, clock clockwork.Clock) *HealthHandler {
	return &HealthHandler{checks: checks, clock: clock}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{
		"status":    "ok",
		"timestamp": h.clock.Now().UTC(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Ready godoc
// @Summary      Readiness probe
// @Description  Pings PostgreSQL and, when configured, Redis.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]bool, len(h.checks))
	allHealthy := true
	for name, ping := range h.checks {
		ok := ping(ctx) == nil
		checks[name] = ok
		allHealthy = allHealthy && ok
	}

	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}
	response := jsonResponse{
		"ready":  allHealthy,
		"checks": checks,
	}
	if err := writeJSON(w, status, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
