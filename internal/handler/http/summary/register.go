package summary

import (
	"log/slog"
	"net/http"

	"content-summarizer/internal/repository"
	"content-summarizer/internal/usecase/ingest"
	"content-summarizer/internal/usecase/summarize"
)

// Deps bundles the dependencies of the summary endpoints. Repo and
// Ingest are optional: a nil Repo disables listing and lookup, a nil
// Ingest disables URL ingestion.
type Deps struct {
	Svc         *summarize.Service
	Ingest      *ingest.Service
	Repo        repository.SummaryRepository
	Parallelism int
	Logger      *slog.Logger

	// Protect wraps handlers that require authentication. Nil means
	// authentication is disabled.
	Protect func(http.Handler) http.Handler
}

// Register registers all summary-related HTTP handlers with the given mux.
func Register(mux *http.ServeMux, deps Deps) {
	protect := deps.Protect
	if protect == nil {
		protect = func(h http.Handler) http.Handler { return h }
	}

	mux.Handle("POST /summaries", protect(CreateHandler{
		Svc:    deps.Svc,
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}))
	if deps.Ingest != nil {
		mux.Handle("POST /summaries/url", protect(CreateFromURLHandler{
			Ingest: deps.Ingest,
			Svc:    deps.Svc,
			Repo:   deps.Repo,
			Logger: deps.Logger,
		}))
	}
	mux.Handle("POST /summaries/batch", protect(BatchHandler{
		Svc:         deps.Svc,
		Parallelism: deps.Parallelism,
	}))

	mux.Handle("GET /summaries", protect(ListHandler{Repo: deps.Repo}))
	mux.Handle("GET /summaries/{id}", protect(GetHandler{Repo: deps.Repo}))
}
