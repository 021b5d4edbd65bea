// Package summary provides HTTP handlers for the summarization endpoints.
package summary

import (
	"errors"
	"net/http"
	"time"

	"content-summarizer/internal/domain/entity"
	"content-summarizer/internal/usecase/ingest"
	"content-summarizer/internal/utils/text"
)

// DTO is the JSON shape of a persisted summary record.
type DTO struct {
	ID           int64     `json:"id"`
	Tier         string    `json:"tier"`
	InputChars   int       `json:"input_chars"`
	SummaryChars int       `json:"summary_chars"`
	Text         string    `json:"text"`
	ElapsedMS    int64     `json:"elapsed_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

func toDTO(s *entity.Summary) DTO {
	return DTO{
		ID:           s.ID,
		Tier:         s.Tier,
		InputChars:   s.InputChars,
		SummaryChars: s.SummaryChars,
		Text:         s.Text,
		ElapsedMS:    s.ElapsedMS,
		CreatedAt:    s.CreatedAt,
	}
}

// resultResponse is the JSON shape returned for a fresh summarization run.
type resultResponse struct {
	ID               int64   `json:"id,omitempty"`
	Summary          string  `json:"summary"`
	Tier             string  `json:"tier"`
	OriginalChars    int     `json:"original_chars"`
	SummaryChars     int     `json:"summary_chars"`
	CompressionRatio float64 `json:"compression_ratio"`
	Chunks           int     `json:"chunks"`
	Passes           int     `json:"passes"`
	InferenceCalls   int     `json:"inference_calls"`
	ElapsedMS        int64   `json:"elapsed_ms"`
}

func newResultResponse(input string, res *entity.SummaryResult) resultResponse {
	inputRunes := text.CountRunes(input)
	summaryRunes := text.CountRunes(res.Summary)

	ratio := 0.0
	if inputRunes > 0 {
		ratio = 1 - float64(summaryRunes)/float64(inputRunes)
	}

	return resultResponse{
		Summary:          res.Summary,
		Tier:             res.Tier.String(),
		OriginalChars:    inputRunes,
		SummaryChars:     summaryRunes,
		CompressionRatio: ratio,
		Chunks:           res.ChunkCount,
		Passes:           res.PassCount,
		InferenceCalls:   res.InferenceCalls,
		ElapsedMS:        res.Elapsed.Milliseconds(),
	}
}

// statusFor maps pipeline errors to HTTP status codes. Client mistakes
// get 4xx; upstream model and fetch failures get 502.
func statusFor(err error) int {
	var validationErr *entity.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	if errors.Is(err, entity.ErrInvalidInput) || errors.Is(err, ingest.ErrInvalidURL) || errors.Is(err, ingest.ErrPrivateIP) {
		return http.StatusBadRequest
	}

	var chunkingErr *entity.ChunkingError
	if errors.As(err, &chunkingErr) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ingest.ErrBodyTooLarge) {
		return http.StatusUnprocessableEntity
	}

	var inferenceErr *entity.InferenceError
	if errors.As(err, &inferenceErr) {
		return http.StatusBadGateway
	}
	if errors.Is(err, ingest.ErrTimeout) || errors.Is(err, ingest.ErrTooManyRedirects) || errors.Is(err, ingest.ErrExtractionFailed) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
