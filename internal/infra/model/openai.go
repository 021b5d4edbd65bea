package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"content-summarizer/internal/domain/entity"
	"content-summarizer/internal/resilience/circuitbreaker"
	"content-summarizer/internal/utils/text"
)

// OpenAI generates summaries through the OpenAI Chat Completions API.
// Same contract as Claude: one blocking call per Generate, no retries.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	limiter         *RateLimiter
	config          Config
	metricsRecorder SummaryMetricsRecorder
}

// NewOpenAI creates an OpenAI generator from the given configuration.
func NewOpenAI(cfg Config) *OpenAI {
	slog.Info("Initialized OpenAI generator",
		slog.String("model", cfg.Model),
		slog.Int("input_capacity_tokens", cfg.InputCapacityTokens),
		slog.Duration("timeout", cfg.Timeout))

	return &OpenAI{
		client:          openai.NewClient(cfg.APIKey),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		limiter:         cfg.limiter(),
		config:          cfg,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}
}

// InputCapacityTokens returns the configured model input window.
func (o *OpenAI) InputCapacityTokens() int {
	return o.config.InputCapacityTokens
}

// Generate summarizes input within bounds using one blocking API call.
func (o *OpenAI) Generate(ctx context.Context, input string, bounds entity.GenerationBounds) (string, error) {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return "", &entity.InferenceError{Provider: BackendOpenAI, Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
		return o.doGenerate(ctx, input, bounds)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("openai api circuit breaker open, request rejected",
				slog.String("service", "openai-api"),
				slog.String("state", o.circuitBreaker.State().String()))
		}
		return "", &entity.InferenceError{Provider: BackendOpenAI, Err: err}
	}

	return cbResult.(string), nil
}

func (o *OpenAI) doGenerate(ctx context.Context, input string, bounds entity.GenerationBounds) (string, error) {
	requestID := uuid.New().String()

	prompt := buildPrompt(input, bounds)
	inputLength := text.CountRunes(input)

	slog.InfoContext(ctx, "Starting generation",
		slog.String("request_id", requestID),
		slog.Int("input_length", inputLength),
		slog.Int("min_tokens", bounds.MinTokens),
		slog.Int("max_tokens", bounds.MaxTokens))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: bounds.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Generation failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		slog.ErrorContext(ctx, "OpenAI API returned no choices",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("openai api returned no choices")
	}

	summary := resp.Choices[0].Message.Content
	if summary == "" {
		return "", fmt.Errorf("openai api returned empty summary")
	}

	o.recordOutcome(ctx, requestID, summary, bounds, duration)
	return summary, nil
}

func (o *OpenAI) recordOutcome(ctx context.Context, requestID, summary string, bounds entity.GenerationBounds, duration time.Duration) {
	summaryLength := text.CountRunes(summary)
	withinLimit := summaryLength <= outputRuneLimit(bounds)

	slog.InfoContext(ctx, "Generation completed",
		slog.String("request_id", requestID),
		slog.Int("summary_length", summaryLength),
		slog.Bool("within_limit", withinLimit),
		slog.Duration("duration", duration))

	o.metricsRecorder.RecordLength(summaryLength)
	o.metricsRecorder.RecordDuration(duration)
	o.metricsRecorder.RecordCompliance(withinLimit)
	if !withinLimit {
		o.metricsRecorder.RecordLimitExceeded()
	}
}
