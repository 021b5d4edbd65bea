package summary

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"content-summarizer/internal/domain/entity"
	"content-summarizer/internal/handler/http/respond"
	"content-summarizer/internal/usecase/summarize"
)

// maxBatchDocuments bounds one batch request.
const maxBatchDocuments = 32

// BatchHandler summarizes several independent documents in one request.
type BatchHandler struct {
	Svc         *summarize.Service
	Parallelism int
}

// batchItemResponse carries one document's outcome. Exactly one of
// Result and Error is set.
type batchItemResponse struct {
	Index  int             `json:"index"`
	Result *resultResponse `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func (h BatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Documents []string `json:"documents"`
		Tier      string   `json:"tier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if len(req.Documents) == 0 {
		respond.SafeError(w, http.StatusBadRequest, errors.New("documents is required"))
		return
	}
	if len(req.Documents) > maxBatchDocuments {
		respond.SafeError(w, http.StatusBadRequest,
			fmt.Errorf("documents must be at most %d entries", maxBatchDocuments))
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

	results, err := h.Svc.SummarizeBatch(r.Context(), req.Documents, tier, h.Parallelism)
	if err != nil {
		// Only context cancellation aborts a batch as a whole.
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]batchItemResponse, len(results))
	for i, res := range results {
		item := batchItemResponse{Index: res.Index}
		if res.Err != nil {
			item.Error = respond.SanitizeError(res.Err)
		} else {
			r := newResultResponse(req.Documents[res.Index], res.Result)
			item.Result = &r
		}
		items[i] = item
	}

	respond.JSON(w, http.StatusOK, map[string]any{"results": items})
}
