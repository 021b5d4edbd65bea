package http

import (
	"net/http"
	"strconv"
	"time"

	"content-summarizer/internal/handler/http/pathutil"
	"content-summarizer/internal/handler/http/responsewriter"
	"content-summarizer/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsMiddleware records HTTP request metrics including duration, size, and status codes.
// It uses path normalization to prevent label cardinality explosion from ID-containing paths.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		// Example: /summaries/123 -> /summaries/:id
		normalizedPath := pathutil.NormalizePath(r.URL.Path)

		requestSize := 0
		if r.ContentLength > 0 {
			requestSize = int(r.ContentLength)
		}

		wrapped := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start)

		status := strconv.Itoa(wrapped.StatusCode())
		metrics.RecordHTTPRequest(r.Method, normalizedPath, status, duration, requestSize, wrapped.BytesWritten())
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
