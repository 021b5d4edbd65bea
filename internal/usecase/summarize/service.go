package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"content-summarizer/internal/domain/entity"
	"content-summarizer/internal/observability/metrics"
	"content-summarizer/internal/observability/tracing"
	"content-summarizer/internal/utils/text"
)

// DefaultMaxPasses bounds the recursive aggregation loop.
const DefaultMaxPasses = 4

// Service orchestrates the summarization pipeline: validation, tier
// resolution, chunking, per-chunk generation and aggregation. The
// pipeline for one document is strictly sequential and never retries;
// any stage error aborts the run with no partial result.
type Service struct {
	generator Generator
	estimator TokenEstimator
	tiers     Tiers
	maxPasses int

	// chunkMaxRunes overrides the budget derived from the model's
	// input capacity when positive.
	chunkMaxRunes int

	logger *slog.Logger
}

// Option configures optional Service behavior.
type Option func(*Service)

// WithMaxPasses overrides the aggregation pass ceiling.
func WithMaxPasses(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPasses = n
		}
	}
}

// WithChunkMaxRunes pins the chunk budget instead of deriving it from
// the generator's input capacity.
func WithChunkMaxRunes(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.chunkMaxRunes = n
		}
	}
}

// WithLogger sets the structured logger used for pipeline progress.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires a summarization pipeline around an already
// constructed generator. The tier table is validated once here so that
// BoundsFor never fails at request time for a valid tier.
func NewService(generator Generator, estimator TokenEstimator, tiers Tiers, opts ...Option) (*Service, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if estimator == nil {
		return nil, fmt.Errorf("token estimator is required")
	}
	if tiers == nil {
		tiers = DefaultTiers()
	}
	if err := tiers.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tier table: %w", err)
	}

	s := &Service{
		generator: generator,
		estimator: estimator,
		tiers:     tiers,
		maxPasses: DefaultMaxPasses,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Tiers exposes the active tier table.
func (s *Service) Tiers() Tiers {
	return s.tiers
}

// Summarize runs the full pipeline for one document and reports the
// result together with its pipeline statistics. Elapsed time covers
// everything from validation to the final summary.
func (s *Service) Summarize(ctx context.Context, input string, tier entity.LengthTier) (*entity.SummaryResult, error) {
	start := time.Now()

	ctx, span := tracing.GetTracer().Start(ctx, "pipeline.summarize",
		trace.WithAttributes(attribute.String("summary.tier", tier.String())))
	defer span.End()

	if err := entity.ValidateDocument(input); err != nil {
		metrics.RecordDocumentSummarized(tier.String(), false)
		return nil, err
	}

	bounds, err := s.tiers.BoundsFor(tier)
	if err != nil {
		metrics.RecordDocumentSummarized(tier.String(), false)
		return nil, err
	}

	budget := s.chunkBudget()
	chunks, err := Chunker{MaxRunes: budget}.Split(input)
	if err != nil {
		metrics.RecordDocumentSummarized(tier.String(), false)
		return nil, fmt.Errorf("split document: %w", err)
	}

	s.logger.Info("document chunked",
		slog.Int("chunks", len(chunks)),
		slog.Int("chunk_budget_runes", budget),
		slog.String("tier", tier.String()))

	calls := 0
	partials := make([]string, len(chunks))
	for i, chunk := range chunks {
		out, genErr := s.generator.Generate(ctx, chunk.Text, bounds)
		calls++
		if genErr != nil {
			metrics.RecordDocumentSummarized(tier.String(), false)
			return nil, fmt.Errorf("summarize chunk %d/%d: %w", chunk.Index+1, len(chunks), genErr)
		}
		partials[i] = out
	}

	// Single-chunk documents skip aggregation entirely.
	final := partials[0]
	passes := 0
	if len(partials) > 1 {
		agg := Aggregator{
			Generator:     s.generator,
			ChunkMaxRunes: budget,
			TargetRunes:   targetRunesFor(bounds, s.estimator),
			MaxPasses:     s.maxPasses,
		}
		var aggCalls int
		final, passes, aggCalls, err = agg.Reduce(ctx, partials, bounds)
		calls += aggCalls
		if err != nil {
			metrics.RecordDocumentSummarized(tier.String(), false)
			return nil, fmt.Errorf("aggregate partial summaries: %w", err)
		}
	}

	elapsed := time.Since(start)
	inputRunes := text.CountRunes(input)
	outputRunes := text.CountRunes(final)

	metrics.RecordDocumentSummarized(tier.String(), true)
	metrics.RecordSummarizationDuration(elapsed.Seconds())
	metrics.RecordPipelineShape(len(chunks), passes, calls)
	if inputRunes > 0 {
		metrics.RecordCompressionRatio(1 - float64(outputRunes)/float64(inputRunes))
	}

	s.logger.Info("document summarized",
		slog.String("tier", tier.String()),
		slog.Int("input_runes", inputRunes),
		slog.Int("summary_runes", outputRunes),
		slog.Int("chunks", len(chunks)),
		slog.Int("passes", passes),
		slog.Int("inference_calls", calls),
		slog.Duration("elapsed", elapsed))

	return &entity.SummaryResult{
		Summary:        final,
		Tier:           tier,
		ChunkCount:     len(chunks),
		PassCount:      passes,
		InferenceCalls: calls,
		Elapsed:        elapsed,
	}, nil
}

// chunkBudget converts the model's input capacity into a rune budget,
// unless an explicit override is configured.
func (s *Service) chunkBudget() int {
	if s.chunkMaxRunes > 0 {
		return s.chunkMaxRunes
	}
	return s.estimator.RunesForTokens(s.generator.InputCapacityTokens())
}
