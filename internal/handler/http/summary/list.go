package summary

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"content-summarizer/internal/handler/http/respond"
	"content-summarizer/internal/repository"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListHandler returns stored summaries, newest first, with
// page/limit pagination.
type ListHandler struct {
	Repo repository.SummaryRepository
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		respond.Error(w, http.StatusServiceUnavailable, errors.New("persistence is not configured"))
		return
	}

	page, limit, err := parsePagination(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	offset := (page - 1) * limit
	summaries, err := h.Repo.List(r.Context(), offset, limit)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	total, err := h.Repo.Count(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(summaries))
	for _, s := range summaries {
		dtos = append(dtos, toDTO(s))
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"data":  dtos,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

func parsePagination(r *http.Request) (page, limit int, err error) {
	page = 1
	limit = defaultPageLimit

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, errors.New("page must be a positive integer")
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxPageLimit {
			return 0, 0, fmt.Errorf("limit must be between 1 and %d", maxPageLimit)
		}
	}
	return page, limit, nil
}
