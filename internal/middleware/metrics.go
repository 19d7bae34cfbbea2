package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"activity-service/internal/metrics"
)

// HTTPRecorder receives one observation per completed request
type HTTPRecorder interface {
	RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration)
}

// Metrics observes every request except probes, scrapes, docs and static assets.
// Requests are labelled by route pattern, so /activities/:name/signup is one series.
func Metrics(recorder HTTPRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics.ShouldSkipEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		recorder.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
