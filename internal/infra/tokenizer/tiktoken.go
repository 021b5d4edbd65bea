package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// defaultEncoding is the BPE vocabulary shared by current OpenAI chat
// models.
const defaultEncoding = "cl100k_base"

// tiktokenRunesPerToken converts token budgets back to rune budgets.
// Three runes per token undershoots the real ratio for English, so a
// chunk sized by it stays inside the window even for dense text.
const tiktokenRunesPerToken = 3

// Tiktoken estimates token counts with a real BPE tokenizer. Exact
// counts let the chunker pack closer to the model window than the
// rune heuristic allows.
type Tiktoken struct {
	encoder *tiktoken.Tiktoken
}

// NewTiktoken creates an estimator for the given encoding name. An
// empty name selects the default chat-model encoding.
func NewTiktoken(encoding string) (*Tiktoken, error) {
	if encoding == "" {
		encoding = defaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %q: %w", encoding, err)
	}
	return &Tiktoken{encoder: enc}, nil
}

// EstimateTokens returns the exact BPE token count for input.
func (t *Tiktoken) EstimateTokens(input string) int {
	if input == "" {
		return 0
	}
	return len(t.encoder.Encode(input, nil, nil))
}

// RunesForTokens returns a rune budget for the given token count.
// The conversion is deliberately conservative; exact inversion is not
// possible because tokenization depends on content.
func (t *Tiktoken) RunesForTokens(tokens int) int {
	if tokens <= 0 {
		return 0
	}
	return tokens * tiktokenRunesPerToken
}
