package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/writingpad/writingpad/pkg/logger"
	"github.com/writingpad/writingpad/pkg/metrics"
)

// RequestLogger logs one line per request and records request metrics.
// Routes are labelled by their pattern (/detail/:id), never the raw path.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(elapsed.Seconds())
		logger.Infof("%s %s %d %s rid=%s", c.Request.Method, c.Request.URL.Path, status, elapsed, RequestID(c))
	}
}
