package summary

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"content-summarizer/internal/domain/entity"
	"content-summarizer/internal/handler/http/respond"
	"content-summarizer/internal/repository"
	"content-summarizer/internal/usecase/ingest"
	"content-summarizer/internal/usecase/summarize"
)

// CreateFromURLHandler fetches a page, extracts its article text and
// summarizes it.
type CreateFromURLHandler struct {
	Ingest *ingest.Service
	Svc    *summarize.Service
	Repo   repository.SummaryRepository // optional
	Logger *slog.Logger
}

func (h CreateFromURLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL  string `json:"url"`
		Tier string `json:"tier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.URL == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("url is required"))
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

	content, err := h.Ingest.FetchDocument(r.Context(), req.URL)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	result, err := h.Svc.Summarize(r.Context(), content, tier)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	resp := newResultResponse(content, result)
	resp.ID = persist(r.Context(), h.Repo, h.Logger, content, result)

	respond.JSON(w, http.StatusOK, resp)
}
