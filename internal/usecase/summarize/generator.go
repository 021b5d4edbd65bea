// Package summarize implements the length-tiered abstractive
// summarization pipeline: tier resolution, chunking, per-chunk
// generation and recursive aggregation.
package summarize

import (
	"context"

	"content-summarizer/internal/domain/entity"
)

// Generator produces one abstractive summary per call. A call is a
// single blocking model invocation; implementations must not retry
// internally, since a failed invocation aborts the whole pipeline.
type Generator interface {
	// Generate summarizes text within the given output bounds.
	Generate(ctx context.Context, text string, bounds entity.GenerationBounds) (string, error)

	// InputCapacityTokens returns the model's input window size.
	InputCapacityTokens() int
}

// TokenEstimator approximates the token cost of text without calling
// the model, and converts a token budget back into a rune budget for
// the chunker.
type TokenEstimator interface {
	EstimateTokens(text string) int
	RunesForTokens(tokens int) int
}
