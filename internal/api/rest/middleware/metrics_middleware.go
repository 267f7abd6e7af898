package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ncsdigital/contact-details-service/internal/metrics"
)

// MetricsMiddleware records request durations by method and status.
func MetricsMiddleware(m metrics.ContactMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		m.ObserveRequestDuration(
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
			time.Since(startTime).Seconds(),
		)
	}
}
