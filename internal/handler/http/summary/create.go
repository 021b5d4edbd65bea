package summary

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"content-summarizer/internal/domain/entity"
	"content-summarizer/internal/handler/http/respond"
	"content-summarizer/internal/repository"
	"content-summarizer/internal/usecase/summarize"
	"content-summarizer/internal/utils/text"
)

// CreateHandler summarizes a document submitted directly in the
// request body.
type CreateHandler struct {
	Svc    *summarize.Service
	Repo   repository.SummaryRepository // optional
	Logger *slog.Logger
}

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		Tier string `json:"tier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.Text == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("text is required"))
		return
	}

	tier := entity.TierMedium
	if req.Tier != "" {
		var err error
		tier, err = entity.ParseLengthTier(req.Tier)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
	}

	result, err := h.Svc.Summarize(r.Context(), req.Text, tier)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	resp := newResultResponse(req.Text, result)
	resp.ID = persist(r.Context(), h.Repo, h.Logger, req.Text, result)

	respond.JSON(w, http.StatusOK, resp)
}

// persist stores the finished run when a repository is configured. The
// summary was already computed, so storage failures degrade to a log
// line instead of failing the request.
func persist(ctx context.Context, repo repository.SummaryRepository, logger *slog.Logger, input string, result *entity.SummaryResult) int64 {
	if repo == nil {
		return 0
	}

	record := &entity.Summary{
		Tier:         result.Tier.String(),
		InputChars:   text.CountRunes(input),
		SummaryChars: text.CountRunes(result.Summary),
		Text:         result.Summary,
		ElapsedMS:    result.Elapsed.Milliseconds(),
	}
	if err := repo.Create(ctx, record); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("failed to persist summary",
			slog.String("tier", record.Tier),
			slog.Any("error", err))
		return 0
	}
	return record.ID
}
