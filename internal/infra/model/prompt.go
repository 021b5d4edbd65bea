package model

import (
	"fmt"

	"content-summarizer/internal/domain/entity"
)

// wordsPerToken approximates how many words fit a token budget for
// English prose. Used only to phrase the prompt; the hard cap is the
// API max_tokens parameter.
const tokensPerWord = 4.0 / 3.0

// wordBudget converts token bounds into a word range for the prompt.
func wordBudget(bounds entity.GenerationBounds) (int, int) {
	minWords := int(float64(bounds.MinTokens) / tokensPerWord)
	maxWords := int(float64(bounds.MaxTokens) / tokensPerWord)
	if minWords < 1 {
		minWords = 1
	}
	if maxWords <= minWords {
		maxWords = minWords + 1
	}
	return minWords, maxWords
}

// buildPrompt constructs the summarization prompt shared by all
// backends. The model sees only the target length and the text; tier
// semantics stay on this side of the API.
func buildPrompt(input string, bounds entity.GenerationBounds) string {
	minWords, maxWords := wordBudget(bounds)
	return fmt.Sprintf(
		"Write an abstractive summary of the following text in %d to %d words. "+
			"Respond with the summary only, no preamble.\n\n%s",
		minWords, maxWords, input)
}
