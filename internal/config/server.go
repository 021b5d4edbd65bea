package config

import (
	"fmt"
	"time"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	// Addr is the listen address. Default: ":8080"
	Addr string

	// RateLimitPerMinute caps requests per client IP per minute.
	// Default: 60
	RateLimitPerMinute int

	// MaxBodyBytes caps request body size. Default: 1MiB
	MaxBodyBytes int64

	// ShutdownTimeout bounds graceful shutdown. Default: 10s
	ShutdownTimeout time.Duration

	// RequestTimeout bounds a single request end to end. Summarizing a
	// long document takes many inference calls, so the default is
	// generous. Default: 2m
	RequestTimeout time.Duration

	// AuthEnabled turns JWT authentication on. Default: false
	AuthEnabled bool
}

// LoadServerConfig loads server configuration from environment
// variables.
//
// Environment variables:
//   - SERVER_ADDR: listen address (default ":8080")
//   - RATE_LIMIT_PER_MINUTE: per-IP request budget (default 60)
//   - MAX_BODY_BYTES: request body cap in bytes (default 1048576)
//   - SHUTDOWN_TIMEOUT: graceful shutdown bound (default "10s")
//   - REQUEST_TIMEOUT: per-request deadline (default "2m")
//   - AUTH_ENABLED: require JWT on summary endpoints (default false)
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Addr:               getEnvOrDefault("SERVER_ADDR", ":8080"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		RequestTimeout:     getEnvDuration("REQUEST_TIMEOUT", 2*time.Minute),
		AuthEnabled:        getEnvBool("AUTH_ENABLED", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("SERVER_ADDR must not be empty")
	}

	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}

	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024, got %d", c.MaxBodyBytes)
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.ShutdownTimeout)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", c.RequestTimeout)
	}

	return nil
}
