package handlers

import (
	"strconv"
	"time"

	"greenhouse_monitor/internal/metrics"

	"github.com/gin-gonic/gin"
)

const unmatchedRoute = "unmatched"

// metricsMiddleware records request count and latency per route template.
func (h *Handler) metricsMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	endpoint := c.FullPath()
	if endpoint == "" {
		endpoint = unmatchedRoute
	}
	method := c.Request.Method
	metrics.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	metrics.HTTPRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
}
