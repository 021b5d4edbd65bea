// Package config loads application configuration from environment
// variables and YAML files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// PipelineConfig holds configuration for the summarization pipeline.
type PipelineConfig struct {
	// MaxPasses caps recursive aggregation. Default: 4
	MaxPasses int

	// ChunkMaxRunes overrides the chunk budget derived from the model
	// input window. Zero keeps the derived budget. Default: 0
	ChunkMaxRunes int

	// BatchParallelism bounds concurrent documents in a batch request.
	// Default: 4
	BatchParallelism int

	// TiersConfigPath points to an optional YAML file overriding the
	// built-in length tiers. Empty keeps the defaults.
	TiersConfigPath string
}

// LoadPipelineConfig loads pipeline configuration from environment
// variables.
//
// Environment variables:
//   - SUMMARIZER_MAX_PASSES: aggregation pass ceiling (default 4)
//   - CHUNK_MAX_RUNES: chunk budget override (default 0, derived)
//   - BATCH_PARALLELISM: batch concurrency (default 4)
//   - TIERS_CONFIG_PATH: tier definition YAML (default unset)
func LoadPipelineConfig() (*PipelineConfig, error) {
	cfg := &PipelineConfig{
		MaxPasses:        getEnvInt("SUMMARIZER_MAX_PASSES", 4),
		ChunkMaxRunes:    getEnvInt("CHUNK_MAX_RUNES", 0),
		BatchParallelism: getEnvInt("BATCH_PARALLELISM", 4),
		TiersConfigPath:  os.Getenv("TIERS_CONFIG_PATH"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c *PipelineConfig) Validate() error {
	if c.MaxPasses < 1 || c.MaxPasses > 16 {
		return fmt.Errorf("SUMMARIZER_MAX_PASSES must be between 1 and 16, got %d", c.MaxPasses)
	}

	if c.ChunkMaxRunes < 0 {
		return fmt.Errorf("CHUNK_MAX_RUNES must not be negative, got %d", c.ChunkMaxRunes)
	}

	if c.ChunkMaxRunes > 0 && c.ChunkMaxRunes < 64 {
		return fmt.Errorf("CHUNK_MAX_RUNES must be at least 64 when set, got %d", c.ChunkMaxRunes)
	}

	if c.BatchParallelism < 1 || c.BatchParallelism > 64 {
		return fmt.Errorf("BATCH_PARALLELISM must be between 1 and 64, got %d", c.BatchParallelism)
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool parses boolean environment variable with default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
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
