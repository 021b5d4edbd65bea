// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Pipeline metrics track the summarization pipeline
var (
	// DocumentsSummarizedTotal counts summarization runs by tier and status
	DocumentsSummarizedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_summarized_total",
			Help: "Total number of documents summarized",
		},
		[]string{"tier", "status"},
	)

	// SummarizationDuration measures end-to-end pipeline duration
	SummarizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarization_duration_seconds",
			Help:    "Time taken to summarize a document end to end",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// ChunksPerDocument measures how many chunks the input split into
	ChunksPerDocument = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chunks_per_document",
			Help:    "Number of chunks a document was split into",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34, 55},
		},
	)

	// AggregationPasses measures reduction passes per run
	AggregationPasses = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aggregation_passes",
			Help:    "Number of aggregation passes performed per run",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6},
		},
	)

	// InferenceCallsPerDocument measures model invocations per run
	InferenceCallsPerDocument = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "inference_calls_per_document",
			Help:    "Number of model invocations per summarization run",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34, 55},
		},
	)

	// CompressionRatio measures achieved compression (1 - output/input)
	CompressionRatio = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summary_compression_ratio",
			Help:    "Compression achieved per run, 1 - output_runes/input_runes",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	// ContentFetchAttemptsTotal counts URL ingestion attempts by result
	ContentFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_attempts_total",
			Help: "Total number of content fetch attempts",
		},
		[]string{"result"}, // result: success, failure
	)

	// ContentFetchDuration measures time to fetch document content
	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Time taken to fetch document content",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// ContentFetchSize measures fetched content size in bytes
	ContentFetchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "content_fetch_size_bytes",
			Help: "Fetched document content size in bytes",
			Buckets: []float64{
				100, 200, 400, 800, 1600, 3200, 6400, 12800,
				25600, 51200, 102400, 204800, 409600, 819200,
				1638400, 3276800, 6553600, 10485760, // up to 10MB
			},
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
