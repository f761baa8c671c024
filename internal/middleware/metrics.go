package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/kairos-api/internal/service"
)

// Metrics captures request duration and count per route. Probe endpoints and
// unrouted paths are skipped to keep label cardinality bounded.
func Metrics(metricsSvc *service.MetricsService, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, path := range skip {
		skipped[path] = struct{}{}
	}
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			return
		}
		if _, ok := skipped[path]; ok {
			return
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
