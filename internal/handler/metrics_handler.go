package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics http.Handler
	ready   func() bool
}

// NewMetricsHandler constructs a metrics handler. A nil metrics handler
// makes /metrics report unavailable; a nil readiness check always reports ready.
func NewMetricsHandler(metrics http.Handler, ready func() bool) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, ready: ready}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether background workers are accepting jobs.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.ready != nil && !h.ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
