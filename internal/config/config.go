package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Display   DisplayConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
	// ReadHeaderTimeout bounds reading request headers only; handlers
	// themselves run without a deadline.
	ReadHeaderTimeout time.Duration
}

type MongoDBConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RateLimitConfig controls the optional global limiter. UseRedis selects the
// shared fixed-window limiter when Redis is configured.
type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type DisplayConfig struct {
	Timezone string
	Location *time.Location
}

// IsProduction reports whether gin should run in release mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// LoadConfig loads configuration from environment variables and an optional .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("SERVER_READ_HEADER_TIMEOUT", 30)
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "test")
	v.SetDefault("MONGODB_COLLECTION", "writings")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	v.SetDefault("DISPLAY_TIMEZONE", "Local")

	cfg := &Config{
		Server: ServerConfig{
			Port:              v.GetString("SERVER_PORT"),
			Host:              v.GetString("SERVER_HOST"),
			Environment:       v.GetString("SERVER_ENVIRONMENT"),
			ReadHeaderTimeout: time.Duration(v.GetInt("SERVER_READ_HEADER_TIMEOUT")) * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:        v.GetString("MONGODB_URI"),
			Database:   v.GetString("MONGODB_DATABASE"),
			Collection: v.GetString("MONGODB_COLLECTION"),
			Timeout:    time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Display: DisplayConfig{
			Timezone: v.GetString("DISPLAY_TIMEZONE"),
		},
	}

	loc, err := time.LoadLocation(cfg.Display.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", cfg.Display.Timezone, err)
	}
	cfg.Display.Location = loc

	if cfg.MongoDB.Timeout <= 0 {
		return nil, fmt.Errorf("MONGODB_TIMEOUT must be positive, got %s", cfg.MongoDB.Timeout)
	}

	return cfg, nil
}
