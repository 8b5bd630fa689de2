package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/holiday-promo/api/internal/metrics"
)

// Metrics records latency, status, and in-flight counts per route pattern.
// Unmatched paths collapse into one label so scanners can't blow up the
// metric cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPInFlightRequests.Inc()

		c.Next()

		metrics.HTTPInFlightRequests.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		elapsed := time.Since(start).Seconds()

		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(elapsed)
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
