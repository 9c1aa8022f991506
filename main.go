package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/writingpad/writingpad/handlers"
	"github.com/writingpad/writingpad/internal/config"
	"github.com/writingpad/writingpad/internal/database"
	"github.com/writingpad/writingpad/internal/writing/service"
	"github.com/writingpad/writingpad/pkg/logger"
	"github.com/writingpad/writingpad/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%s db=%s redis=%v rate_limit=%v tz=%s",
		cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.Redis.Host != "", cfg.RateLimit.Enabled, cfg.Display.Location)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One client for the whole process; the driver pools connections.
	client, err := database.ConnectWithRetry(ctx, database.DefaultRetry, func(ctx context.Context) (*mongo.Client, error) {
		return database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	})
	if err != nil {
		logger.Warnf("%v; serving anyway, store calls fail until MongoDB is reachable", err)
		client, err = database.Open(cfg.MongoDB.URI)
		if err != nil {
			logger.Fatalf("invalid MongoDB configuration: %v", err)
		}
	} else {
		logger.Infof("connected to MongoDB at %s", cfg.MongoDB.URI)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
	d := deps{
		svc: service.NewMongoService(col),
		checks: map[string]handlers.Check{
			"mongo": database.Pinger{Client: client, Timeout: cfg.MongoDB.Timeout}.Ping,
		},
	}

	if cfg.Redis.Host != "" {
		rc := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rc.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
		d.redis = rc
		defer rc.Close()
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := newRouter(cfg, d)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout}

	go func() {
		logger.Infof("Server is running on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
