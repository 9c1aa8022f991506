package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check reports whether one dependency is usable.
type Check func(ctx context.Context) error

// RegisterHealth registers liveness and readiness endpoints.
// - GET /health -> always 200 while the process serves
// - GET /ready  -> 200 only when every check passes, 503 otherwise
func RegisterHealth(r *gin.Engine, startTime time.Time, checks map[string]Check) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}
		for name, check := range checks {
			ok := check(c.Request.Context()) == nil
			deps[name] = ok
			if !ok {
				ready = false
			}
		}
		uptime := time.Since(startTime).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})
}
