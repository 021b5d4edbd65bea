package fetcher

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ContentFetchConfig controls security and resource limits for
// document fetching.
type ContentFetchConfig struct {
	// Timeout is the maximum duration for a single HTTP request.
	Timeout time.Duration

	// MaxBodySize is the maximum response body size in bytes.
	// Enforced while reading, not from the Content-Length header.
	MaxBodySize int64

	// MaxRedirects is the maximum number of redirects to follow.
	// Every redirect target is re-validated for SSRF.
	MaxRedirects int

	// DenyPrivateIPs blocks URLs resolving to private, loopback or
	// link-local addresses. Always true in production; tests that
	// fetch from httptest servers disable it.
	DenyPrivateIPs bool
}

// DefaultConfig returns production-ready fetch limits.
func DefaultConfig() ContentFetchConfig {
	return ContentFetchConfig{
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
	}
}

// Validate checks the configuration for values that would be unsafe
// or useless at runtime.
func (c *ContentFetchConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)
	maxBodySize := int64(100 * 1024 * 1024)
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	return nil
}

// LoadConfigFromEnv loads fetch configuration from environment
// variables, falling back to defaults for anything unset.
//
// Environment variables:
//   - CONTENT_FETCH_TIMEOUT: duration string, e.g. "10s"
//   - CONTENT_FETCH_MAX_BODY_SIZE: bytes
//   - CONTENT_FETCH_MAX_REDIRECTS: integer
//   - CONTENT_FETCH_DENY_PRIVATE_IPS: "true" or "false"
func LoadConfigFromEnv() (ContentFetchConfig, error) {
	cfg := DefaultConfig()

	if val := os.Getenv("CONTENT_FETCH_TIMEOUT"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid CONTENT_FETCH_TIMEOUT: %v (expected format: '10s', '1m')", err)
		}
		cfg.Timeout = parsed
	}

	if val := os.Getenv("CONTENT_FETCH_MAX_BODY_SIZE"); val != "" {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid CONTENT_FETCH_MAX_BODY_SIZE: %v", err)
		}
		cfg.MaxBodySize = parsed
	}

	if val := os.Getenv("CONTENT_FETCH_MAX_REDIRECTS"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid CONTENT_FETCH_MAX_REDIRECTS: %v", err)
		}
		cfg.MaxRedirects = parsed
	}

	if val := os.Getenv("CONTENT_FETCH_DENY_PRIVATE_IPS"); val != "" {
		cfg.DenyPrivateIPs = val == "true"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
