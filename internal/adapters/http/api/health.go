// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/lineup/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	metrics http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz requests by serving the service's
// Prometheus registry; a 200 doubles as the liveness signal.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	h.metrics.ServeHTTP(w, r)
}
