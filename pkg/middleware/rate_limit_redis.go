package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/writingpad/writingpad/pkg/logger"
	"github.com/writingpad/writingpad/pkg/metrics"
)

// RedisRateLimitMiddleware provides a coarse fixed-window Redis-backed limiter
// keyed by client IP, so several server processes share one budget.
// Algorithm: INCR a per-client key whose TTL is set on the first hit of a window,
// and compare against allowed = floor(rps*windowSeconds)+burst. The window
// closes when Redis expires the key.
func RedisRateLimitMiddleware(client *redis.Client, rps float64, burst int, window time.Duration) gin.HandlerFunc {
	if client == nil {
		return RateLimitMiddleware(rps, burst)
	}
	windowSeconds := int(window.Seconds())
	if windowSeconds <= 0 {
		windowSeconds = 1
	}
	allowedPerWindow := int(rps*float64(windowSeconds)) + burst
	return func(c *gin.Context) {
		redisKey := "rl:" + clientKey(c)

		cnt, err := client.Incr(c.Request.Context(), redisKey).Result()
		if err != nil {
			logger.Errorf("rate limit check failed rid=%s: %v", RequestID(c), err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if cnt == 1 {
			if err := client.Expire(c.Request.Context(), redisKey, time.Duration(windowSeconds)*time.Second).Err(); err != nil {
				// a key without TTL would never reset; drop it so the next hit retries
				logger.Warnf("rate limit expire failed rid=%s: %v", RequestID(c), err)
				_ = client.Del(c.Request.Context(), redisKey).Err()
			}
		}
		if int(cnt) > allowedPerWindow {
			c.Header("Retry-After", fmt.Sprintf("%d", windowSeconds))
			metrics.RateLimitRejected.WithLabelValues("redis").Inc()
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("redis").Inc()
		c.Next()
	}
}
