package middleware

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
)

// HTTPRecorder observes served requests
type HTTPRecorder interface {
	RecordHTTPRequest(method, path string, status int, elapsed coreport.Duration)
}

// Metrics records request count and latency by route template
func Metrics(recorder HTTPRecorder, timeProvider coreport.TimeProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := timeProvider.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), timeProvider.Since(start))
	}
}
