package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"content-summarizer/internal/domain/entity"
	"content-summarizer/internal/resilience/circuitbreaker"
	"content-summarizer/internal/utils/text"
)

// Claude generates summaries through Anthropic's Claude API. Calls run
// through a circuit breaker and an optional rate limiter; a failed call
// is reported once and never retried.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	limiter         *RateLimiter
	config          Config
	metricsRecorder SummaryMetricsRecorder
}

// NewClaude creates a Claude generator from the given configuration.
func NewClaude(cfg Config) *Claude {
	slog.Info("Initialized Claude generator",
		slog.String("model", cfg.Model),
		slog.Int("input_capacity_tokens", cfg.InputCapacityTokens),
		slog.Duration("timeout", cfg.Timeout))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		limiter:         cfg.limiter(),
		config:          cfg,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}
}

// InputCapacityTokens returns the configured model input window.
func (c *Claude) InputCapacityTokens() int {
	return c.config.InputCapacityTokens
}

// Generate summarizes input within bounds using one blocking API call.
func (c *Claude) Generate(ctx context.Context, input string, bounds entity.GenerationBounds) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &entity.InferenceError{Provider: BackendClaude, Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doGenerate(ctx, input, bounds)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("claude api circuit breaker open, request rejected",
				slog.String("service", "claude-api"),
				slog.String("state", c.circuitBreaker.State().String()))
		}
		return "", &entity.InferenceError{Provider: BackendClaude, Err: err}
	}

	return cbResult.(string), nil
}

// doGenerate performs the actual API call without circuit breaker
// protection. It includes structured logging and metrics recording.
func (c *Claude) doGenerate(ctx context.Context, input string, bounds entity.GenerationBounds) (string, error) {
	// Request ID for tracing a single inference call through the logs
	requestID := uuid.New().String()

	prompt := buildPrompt(input, bounds)
	inputLength := text.CountRunes(input)

	slog.InfoContext(ctx, "Starting generation",
		slog.String("request_id", requestID),
		slog.Int("input_length", inputLength),
		slog.Int("min_tokens", bounds.MinTokens),
		slog.Int("max_tokens", bounds.MaxTokens))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(bounds.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Generation failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	// Validate response structure
	if len(message.Content) == 0 {
		slog.ErrorContext(ctx, "Claude API returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		slog.ErrorContext(ctx, "Claude API returned unexpected response type",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	summary := textBlock.Text
	if summary == "" {
		return "", fmt.Errorf("claude api returned empty summary")
	}

	c.recordOutcome(ctx, requestID, summary, bounds, duration)
	return summary, nil
}

// recordOutcome logs and records metrics for one completed call.
func (c *Claude) recordOutcome(ctx context.Context, requestID, summary string, bounds entity.GenerationBounds, duration time.Duration) {
	summaryLength := text.CountRunes(summary)
	withinLimit := summaryLength <= outputRuneLimit(bounds)

	slog.InfoContext(ctx, "Generation completed",
		slog.String("request_id", requestID),
		slog.Int("summary_length", summaryLength),
		slog.Bool("within_limit", withinLimit),
		slog.Duration("duration", duration))

	c.metricsRecorder.RecordLength(summaryLength)
	c.metricsRecorder.RecordDuration(duration)
	c.metricsRecorder.RecordCompliance(withinLimit)
	if !withinLimit {
		c.metricsRecorder.RecordLimitExceeded()
	}
}

// outputRuneLimit approximates the rune ceiling implied by the token
// bounds, for compliance accounting only.
func outputRuneLimit(bounds entity.GenerationBounds) int {
	return bounds.MaxTokens * 4
}
