package summary

import (
	"errors"
	"net/http"

	"content-summarizer/internal/handler/http/pathutil"
	"content-summarizer/internal/handler/http/respond"
	"content-summarizer/internal/repository"
)

// GetHandler returns one stored summary by ID.
type GetHandler struct {
	Repo repository.SummaryRepository
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		respond.Error(w, http.StatusServiceUnavailable, errors.New("persistence is not configured"))
		return
	}

	id, err := pathutil.ExtractID(r.URL.Path, "/summaries/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid summary id"))
		return
	}

	summary, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if summary == nil {
		respond.SafeError(w, http.StatusNotFound, errors.New("summary not found"))
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(summary))
}
