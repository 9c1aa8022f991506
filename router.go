package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/writingpad/writingpad/handlers"
	"github.com/writingpad/writingpad/internal/config"
	"github.com/writingpad/writingpad/internal/writing/handler"
	"github.com/writingpad/writingpad/internal/writing/service"
	"github.com/writingpad/writingpad/pkg/logger"
	"github.com/writingpad/writingpad/pkg/middleware"
	"github.com/writingpad/writingpad/web"
)

// deps are the long-lived collaborators shared by every request.
type deps struct {
	svc    service.Service
	redis  *redis.Client
	checks map[string]handlers.Check
}

func newRouter(cfg *config.Config, d deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestIDMiddleware(), middleware.RequestLogger())

	checks := d.checks
	if checks == nil {
		checks = map[string]handlers.Check{}
	}
	if d.redis != nil && cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
		checks["redis"] = func(ctx context.Context) error { return d.redis.Ping(ctx).Err() }
	}
	// ops endpoints sit outside the limited group
	handlers.RegisterHealth(r, startTime, checks)
	handlers.RegisterSwagger(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	app := r.Group("/")
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && d.redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			app.Use(middleware.RedisRateLimitMiddleware(d.redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
			logger.Infof("rate limiter: redis, rps=%.2f burst=%d window=%s", cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		} else {
			app.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
			logger.Infof("rate limiter: memory, rps=%.2f burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}
	r.SetHTMLTemplate(web.MustTemplates())
	handler.NewHandler(d.svc, cfg.Display.Location).Register(app)
	return r
}
