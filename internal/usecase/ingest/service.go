package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"content-summarizer/internal/domain/entity"
	"content-summarizer/internal/observability/metrics"
	"content-summarizer/internal/resilience/retry"
	"content-summarizer/internal/utils/text"
)

// Service fetches a document from a URL and prepares it for
// summarization. Fetching is the only stage of the pipeline that
// retries: HTTP failures are usually transient, inference failures
// are not.
type Service struct {
	fetcher     ContentFetcher
	retryConfig retry.Config
	logger      *slog.Logger
}

// NewService creates an ingest service around the given fetcher.
func NewService(fetcher ContentFetcher, logger *slog.Logger) (*Service, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("content fetcher is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fetcher:     fetcher,
		retryConfig: retry.ContentFetchConfig(),
		logger:      logger,
	}, nil
}

// FetchDocument fetches the page at url and returns its extracted
// article text. The returned text satisfies the same minimum-length
// rule as directly submitted documents, so it can go straight into
// the summarization pipeline.
func (s *Service) FetchDocument(ctx context.Context, url string) (string, error) {
	if err := entity.ValidateURL(url); err != nil {
		return "", err
	}

	start := time.Now()
	var content string
	err := retry.WithBackoff(ctx, s.retryConfig, func() error {
		fetched, fetchErr := s.fetcher.FetchContent(ctx, url)
		if fetchErr != nil {
			return fetchErr
		}
		content = fetched
		return nil
	})
	duration := time.Since(start)

	if err != nil {
		s.logger.Warn("content fetch failed",
			slog.String("url", url),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		metrics.RecordContentFetchFailed(duration)
		return "", fmt.Errorf("fetch document: %w", err)
	}

	content = text.NormalizeSpace(content)
	size := text.CountRunes(content)
	metrics.RecordContentFetchSuccess(duration, size)

	if size < entity.MinDocumentRunes {
		s.logger.Warn("extracted content too short to summarize",
			slog.String("url", url),
			slog.Int("runes", size))
		return "", &entity.ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("extracted content has %d characters, need at least %d", size, entity.MinDocumentRunes),
		}
	}

	s.logger.Info("document fetched",
		slog.String("url", url),
		slog.Int("runes", size),
		slog.Duration("duration", duration))

	return content, nil
}
