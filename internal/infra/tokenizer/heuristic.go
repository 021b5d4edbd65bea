// Package tokenizer provides token estimators used to size chunks
// against a model's input window. The heuristic estimator assumes a
// fixed runes-per-token ratio; the tiktoken estimator counts real BPE
// tokens for OpenAI models.
package tokenizer

import "content-summarizer/internal/utils/text"

// DefaultRunesPerToken is the rune-to-token ratio assumed for mixed
// prose. Four runes per token is conservative for English and roughly
// right for CJK-heavy text.
const DefaultRunesPerToken = 4

// Heuristic estimates token counts from rune counts with a fixed
// ratio. It never under-reports: estimates round up so a chunk sized
// by this estimator always fits the window it was sized for.
type Heuristic struct {
	runesPerToken int
}

// NewHeuristic creates an estimator with the given ratio. A
// non-positive ratio falls back to the default.
func NewHeuristic(runesPerToken int) *Heuristic {
	if runesPerToken <= 0 {
		runesPerToken = DefaultRunesPerToken
	}
	return &Heuristic{runesPerToken: runesPerToken}
}

// EstimateTokens returns the estimated token count for input,
// rounded up.
func (h *Heuristic) EstimateTokens(input string) int {
	runes := text.CountRunes(input)
	if runes == 0 {
		return 0
	}
	return (runes + h.runesPerToken - 1) / h.runesPerToken
}

// RunesForTokens returns how many runes fit the given token budget.
func (h *Heuristic) RunesForTokens(tokens int) int {
	if tokens <= 0 {
		return 0
	}
	return tokens * h.runesPerToken
}
