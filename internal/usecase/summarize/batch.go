package summarize

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"content-summarizer/internal/domain/entity"
)

// DefaultBatchParallelism bounds concurrent documents in a batch run.
const DefaultBatchParallelism = 4

// BatchResult pairs one document's outcome with its position in the
// request. Exactly one of Result and Err is set.
type BatchResult struct {
	Index  int
	Result *entity.SummaryResult
	Err    error
}

// SummarizeBatch summarizes independent documents with bounded
// parallelism. Each document still runs the sequential single-document
// pipeline; only the fan-out across documents is concurrent. Per-document
// failures land in their BatchResult instead of aborting the batch; only
// context cancellation stops the run early.
func (s *Service) SummarizeBatch(ctx context.Context, documents []string, tier entity.LengthTier, parallelism int) ([]BatchResult, error) {
	if parallelism <= 0 {
		parallelism = DefaultBatchParallelism
	}

	results := make([]BatchResult, len(documents))

	g, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, parallelism)

	for i, doc := range documents {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = BatchResult{Index: i, Err: err}
				return err
			}

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = BatchResult{Index: i, Err: ctx.Err()}
				return ctx.Err()
			}

			res, err := s.Summarize(ctx, doc, tier)
			if err != nil {
				s.logger.Warn("batch document failed",
					slog.Int("index", i),
					slog.Any("error", err))
				results[i] = BatchResult{Index: i, Err: err}
				return nil
			}
			results[i] = BatchResult{Index: i, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
