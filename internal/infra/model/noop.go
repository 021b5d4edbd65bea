package model

import (
	"context"
	"strings"

	"content-summarizer/internal/domain/entity"
)

// defaultNoOpCapacity matches the default model input window so the
// pipeline chunks the same way it would against a real backend.
const defaultNoOpCapacity = 1024

// NoOp is a deterministic generator for development and tests. It
// truncates the input to a word count proportional to the requested
// token bounds instead of calling any API.
type NoOp struct {
	capacityTokens int
}

// NewNoOp creates a NoOp generator with the given input capacity.
// A non-positive capacity falls back to the default window.
func NewNoOp(capacityTokens int) *NoOp {
	if capacityTokens <= 0 {
		capacityTokens = defaultNoOpCapacity
	}
	return &NoOp{capacityTokens: capacityTokens}
}

// InputCapacityTokens returns the configured input window.
func (n *NoOp) InputCapacityTokens() int {
	return n.capacityTokens
}

// Generate returns a deterministic prefix of the input sized to the
// requested bounds. Same input and bounds always yield the same output.
func (n *NoOp) Generate(ctx context.Context, input string, bounds entity.GenerationBounds) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &entity.InferenceError{Provider: BackendNoop, Err: err}
	}

	words := strings.Fields(input)
	if len(words) == 0 {
		return "", &entity.InferenceError{Provider: BackendNoop, Err: entity.ErrInvalidInput}
	}

	// Three quarters of the token ceiling keeps output comfortably
	// inside bounds while still shrinking multi-chunk merges.
	limit := bounds.MaxTokens * 3 / 4
	if limit < 1 {
		limit = 1
	}
	if len(words) > limit {
		words = words[:limit]
	}
	return strings.Join(words, " "), nil
}
