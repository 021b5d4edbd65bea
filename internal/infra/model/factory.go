package model

import (
	"fmt"

	"content-summarizer/internal/usecase/summarize"
)

// New constructs the generator selected by cfg.Backend.
func New(cfg *Config) (summarize.Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("model config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendClaude:
		return NewClaude(*cfg), nil
	case BackendOpenAI:
		return NewOpenAI(*cfg), nil
	case BackendNoop:
		return NewNoOp(cfg.InputCapacityTokens), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
