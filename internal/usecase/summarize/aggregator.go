package summarize

import (
	"context"
	"fmt"
	"strings"

	"content-summarizer/internal/domain/entity"
	"content-summarizer/internal/utils/text"
)

// Aggregator merges per-chunk summaries in document order and, while the
// merged text is still longer than the tier target, re-chunks and
// re-summarizes it. The loop is explicitly bounded by MaxPasses and by a
// strict-shrink check; hitting either bound returns the shortest
// candidate produced so far rather than an error.
type Aggregator struct {
	Generator     Generator
	ChunkMaxRunes int
	TargetRunes   int
	MaxPasses     int
}

// Reduce collapses partial summaries into a final one. It returns the
// final text, the number of passes performed and the number of
// generator calls made. A single partial is returned as-is with zero
// passes.
func (a Aggregator) Reduce(ctx context.Context, partials []string, bounds entity.GenerationBounds) (string, int, int, error) {
	merged := text.NormalizeSpace(strings.Join(partials, " "))
	if len(partials) <= 1 {
		return merged, 0, 0, nil
	}

	passes := 0
	calls := 0
	for {
		if text.CountRunes(merged) <= a.TargetRunes {
			return merged, passes, calls, nil
		}
		if passes >= a.MaxPasses {
			// Pass ceiling reached: graceful degradation, not an error.
			return merged, passes, calls, nil
		}
		passes++

		chunks, err := Chunker{MaxRunes: a.ChunkMaxRunes}.Split(merged)
		if err != nil {
			return "", passes - 1, calls, fmt.Errorf("aggregation pass %d: %w", passes, err)
		}

		outputs := make([]string, len(chunks))
		for i, chunk := range chunks {
			out, genErr := a.Generator.Generate(ctx, chunk.Text, bounds)
			calls++
			if genErr != nil {
				return "", passes - 1, calls, fmt.Errorf("aggregation pass %d, chunk %d: %w", passes, chunk.Index, genErr)
			}
			outputs[i] = out
		}
		next := text.NormalizeSpace(strings.Join(outputs, " "))

		// Each accepted pass strictly shrinks the text, so merged is
		// always the shortest candidate seen. A pass that fails to
		// shrink will never converge; stop here.
		if text.CountRunes(next) >= text.CountRunes(merged) {
			return merged, passes, calls, nil
		}
		merged = next
	}
}

// targetRunesFor derives the aggregation target from the tier bounds:
// the merged text is done when it would fit the tier's maximum output
// converted back to runes.
func targetRunesFor(bounds entity.GenerationBounds, est TokenEstimator) int {
	return est.RunesForTokens(bounds.MaxTokens)
}
