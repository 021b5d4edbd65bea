// Package model provides generator adapters over hosted language model
// APIs. It includes Claude (Anthropic) and OpenAI implementations with
// circuit breaker protection, optional request rate limiting, and
// Prometheus metrics. Inference calls are never retried: a failed call
// aborts the summarization run.
package model

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Backend identifiers accepted by SUMMARIZER_BACKEND.
const (
	BackendClaude = "claude"
	BackendOpenAI = "openai"
	BackendNoop   = "noop"
)

// Config holds configuration for a generator backend.
// Configuration is loaded from environment variables with fallback to defaults.
type Config struct {
	// Backend selects the provider: "claude", "openai" or "noop".
	Backend string

	// Model is the provider model identifier. Empty selects the
	// provider default.
	Model string

	// APIKey authenticates against the provider.
	APIKey string

	// InputCapacityTokens is the model input window the chunker sizes
	// against. Loaded from MODEL_INPUT_CAPACITY_TOKENS. Default: 1024.
	InputCapacityTokens int

	// Timeout is the maximum duration for a single inference call.
	Timeout time.Duration

	// RequestsPerSecond throttles inference calls when positive.
	// Zero disables rate limiting.
	RequestsPerSecond float64

	// Burst is the rate limiter burst size when throttling is enabled.
	Burst int
}

// Default model identifiers per backend.
const (
	defaultClaudeModel = "claude-sonnet-4-5-20250929"
	defaultOpenAIModel = "gpt-4o-mini"
)

// LoadConfig loads backend configuration from environment variables.
//
// Environment variables:
//   - SUMMARIZER_BACKEND: claude (default), openai or noop
//   - SUMMARIZER_MODEL: provider model identifier
//   - ANTHROPIC_API_KEY / OPENAI_API_KEY: provider credentials
//   - MODEL_INPUT_CAPACITY_TOKENS: input window (default 1024)
//   - SUMMARIZER_TIMEOUT: per-call timeout (default 60s)
//   - SUMMARIZER_RPS / SUMMARIZER_BURST: optional rate limiting
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Backend:             getEnvOrDefault("SUMMARIZER_BACKEND", BackendClaude),
		Model:               os.Getenv("SUMMARIZER_MODEL"),
		InputCapacityTokens: getEnvInt("MODEL_INPUT_CAPACITY_TOKENS", 1024),
		Timeout:             getEnvDuration("SUMMARIZER_TIMEOUT", 60*time.Second),
		RequestsPerSecond:   getEnvFloat("SUMMARIZER_RPS", 0),
		Burst:               getEnvInt("SUMMARIZER_BURST", 1),
	}

	switch cfg.Backend {
	case BackendClaude:
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.Model == "" {
			cfg.Model = defaultClaudeModel
		}
	case BackendOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Model == "" {
			cfg.Model = defaultOpenAIModel
		}
	case BackendNoop:
		// No credentials required.
	default:
		return nil, fmt.Errorf("unknown SUMMARIZER_BACKEND %q (want claude, openai or noop)", cfg.Backend)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid summarizer configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c *Config) Validate() error {
	if c.Backend != BackendClaude && c.Backend != BackendOpenAI && c.Backend != BackendNoop {
		return fmt.Errorf("backend must be claude, openai or noop, got %q", c.Backend)
	}

	if c.Backend != BackendNoop && c.APIKey == "" {
		return fmt.Errorf("%s backend requires an API key", c.Backend)
	}

	if c.InputCapacityTokens < 128 || c.InputCapacityTokens > 2_000_000 {
		return fmt.Errorf("MODEL_INPUT_CAPACITY_TOKENS must be between 128 and 2000000, got %d", c.InputCapacityTokens)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("SUMMARIZER_TIMEOUT must be positive")
	}

	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("SUMMARIZER_RPS must not be negative")
	}

	if c.RequestsPerSecond > 0 && c.Burst < 1 {
		return fmt.Errorf("SUMMARIZER_BURST must be at least 1 when rate limiting is enabled")
	}

	return nil
}

// limiter returns a rate limiter for the configured throttle, or nil
// when throttling is disabled.
func (c *Config) limiter() *RateLimiter {
	if c.RequestsPerSecond <= 0 {
		return nil
	}
	return NewRateLimiter(c.RequestsPerSecond, c.Burst)
}

// getEnvOrDefault returns environment variable value or default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses integer environment variable with default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvFloat parses float environment variable with default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration parses duration environment variable with default.
// Supports formats like "30s", "1m", "2h".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
