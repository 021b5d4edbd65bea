// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Pipeline metrics (documents, chunks, passes, compression)
//   - Database query metrics
//   - Application performance metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "content-summarizer/internal/observability/metrics"
//
//	func run(tier string) {
//	    start := time.Now()
//	    // ... summarize document ...
//
//	    metrics.RecordDocumentSummarized(tier, true)
//	    metrics.RecordSummarizationDuration(time.Since(start).Seconds())
//	}
package metrics
