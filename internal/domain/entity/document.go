package entity

import (
	"fmt"
	"time"
)

// LengthTier selects how long the generated summary should be.
// It is a closed enum; every consumer switches exhaustively over the
// three values instead of comparing raw strings.
type LengthTier int

const (
	TierShort LengthTier = iota
	TierMedium
	TierLong
)

// ParseLengthTier converts the external string form ("short", "medium",
// "long") into a LengthTier. Unknown values return a ValidationError.
func ParseLengthTier(s string) (LengthTier, error) {
	switch s {
	case "short":
		return TierShort, nil
	case "medium":
		return TierMedium, nil
	case "long":
		return TierLong, nil
	default:
		return 0, &ValidationError{
			Field:   "tier",
			Message: fmt.Sprintf("tier must be 'short', 'medium' or 'long', got '%s'", s),
		}
	}
}

// String returns the external string form of the tier.
func (t LengthTier) String() string {
	switch t {
	case TierShort:
		return "short"
	case TierMedium:
		return "medium"
	case TierLong:
		return "long"
	default:
		return "unknown"
	}
}

// Valid reports whether the tier is one of the three defined values.
func (t LengthTier) Valid() bool {
	return t == TierShort || t == TierMedium || t == TierLong
}

// GenerationBounds constrains a single generation call. MinTokens and
// MaxTokens bound the model output; MinTokens < MaxTokens always holds
// for bounds produced by a validated tier table.
type GenerationBounds struct {
	MinTokens int
	MaxTokens int
}

// Chunk is one contiguous piece of a document, sized to fit the model's
// input window. Index preserves original document order.
type Chunk struct {
	Index int
	Text  string
}

// SummaryResult is the outcome of one full summarization run.
type SummaryResult struct {
	// Summary is the final generated text.
	Summary string

	// Tier the run was requested with.
	Tier LengthTier

	// ChunkCount is the number of chunks the input was split into.
	ChunkCount int

	// PassCount is the number of aggregation passes performed.
	// Zero for single-chunk inputs.
	PassCount int

	// InferenceCalls is the total number of model invocations.
	InferenceCalls int

	// Elapsed is the wall-clock duration of the whole pipeline.
	Elapsed time.Duration
}

// Summary is a persisted record of a completed summarization.
type Summary struct {
	ID           int64
	Tier         string
	InputChars   int
	SummaryChars int
	Text         string
	ElapsedMS    int64
	CreatedAt    time.Time
}
