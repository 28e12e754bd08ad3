package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cardreg.backend/internal/metrics"
)

// MetricsMiddleware records request durations labeled by route template
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
