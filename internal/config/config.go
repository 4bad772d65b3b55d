package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Log         LogConfig
	Server      ServerConfig
	RateLimit   RateLimitConfig
	Redis       RedisConfig
	SeedOnStart bool
}

// LogConfig holds zerolog settings.
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

// RateLimitConfig holds token bucket settings. Client limits apply per remote
// address; estate limits apply per estate across all clients.
type RateLimitConfig struct {
	RequestsPerSecond       float64
	Burst                   int
	EstateRequestsPerSecond float64
	EstateBurst             int
}

// RedisConfig holds Redis connection settings. An empty Addr disables event
// publication and WebSocket streaming.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// Load reads configuration from environment variables. The defaults run a
// self-contained server with the demo estate loaded and no Redis.
func Load() (*Config, error) {
	readTimeout, err := getEnvDuration("ESTATEHUB_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("ESTATEHUB_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	shutdownTimeout, err := getEnvDuration("ESTATEHUB_SERVER_SHUTDOWN_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	rps, err := getEnvFloat("ESTATEHUB_RATE_LIMIT_RPS", 50)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	burst, err := getEnvInt("ESTATEHUB_RATE_LIMIT_BURST", 100)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	estateRPS, err := getEnvFloat("ESTATEHUB_ESTATE_RATE_LIMIT_RPS", 200)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	estateBurst, err := getEnvInt("ESTATEHUB_ESTATE_RATE_LIMIT_BURST", 400)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("ESTATEHUB_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	seed, err := getEnvBool("ESTATEHUB_SEED_ON_START", true)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cfg := &Config{
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("ESTATEHUB_LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("ESTATEHUB_LOG_FORMAT", "json")),
		},
		Server: ServerConfig{
			Addr:            getEnv("ESTATEHUB_SERVER_ADDR", ":8080"),
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
			CORSOrigins:     getEnvList("ESTATEHUB_CORS_ORIGINS", []string{"http://localhost:5173"}),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond:       rps,
			Burst:                   burst,
			EstateRequestsPerSecond: estateRPS,
			EstateBurst:             estateBurst,
		},
		Redis: RedisConfig{
			Addr:     getEnv("ESTATEHUB_REDIS_ADDR", ""),
			Password: getEnv("ESTATEHUB_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		SeedOnStart: seed,
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks value bounds.
func (c *Config) validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil || c.Log.Level == "" {
		return fmt.Errorf("ESTATEHUB_LOG_LEVEL %q is not a log level", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("ESTATEHUB_LOG_FORMAT must be json or text, got %q", c.Log.Format)
	}

	if c.Server.Addr == "" {
		return errors.New("ESTATEHUB_SERVER_ADDR is required")
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("ESTATEHUB_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("ESTATEHUB_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("ESTATEHUB_SERVER_SHUTDOWN_TIMEOUT must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if slices.Contains(c.Server.CORSOrigins, "*") {
		log.Warn().Msg("ESTATEHUB_CORS_ORIGINS allows any origin; restrict it outside local development")
	}

	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("ESTATEHUB_RATE_LIMIT_RPS must be positive, got %g", c.RateLimit.RequestsPerSecond)
	}
	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("ESTATEHUB_RATE_LIMIT_BURST must be >= 1, got %d", c.RateLimit.Burst)
	}
	if c.RateLimit.EstateRequestsPerSecond <= 0 {
		return fmt.Errorf("ESTATEHUB_ESTATE_RATE_LIMIT_RPS must be positive, got %g", c.RateLimit.EstateRequestsPerSecond)
	}
	if c.RateLimit.EstateBurst < 1 {
		return fmt.Errorf("ESTATEHUB_ESTATE_RATE_LIMIT_BURST must be >= 1, got %d", c.RateLimit.EstateBurst)
	}

	if c.Redis.DB < 0 || c.Redis.DB > 15 {
		return fmt.Errorf("ESTATEHUB_REDIS_DB must be 0-15, got %d", c.Redis.DB)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as float: %w", key, v, err)
	}
	return f, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parsing %s=%q as bool: %w", key, v, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
