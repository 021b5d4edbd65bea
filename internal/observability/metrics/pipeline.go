package metrics

import "time"

// RecordDocumentSummarized records the outcome of a summarization run.
func RecordDocumentSummarized(tier string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	DocumentsSummarizedTotal.WithLabelValues(tier, status).Inc()
}

// RecordSummarizationDuration records the end-to-end pipeline duration
// in seconds.
func RecordSummarizationDuration(seconds float64) {
	SummarizationDuration.Observe(seconds)
}

// RecordPipelineShape records how a run decomposed: chunk count,
// aggregation passes and total model invocations.
func RecordPipelineShape(chunks, passes, calls int) {
	ChunksPerDocument.Observe(float64(chunks))
	AggregationPasses.Observe(float64(passes))
	InferenceCallsPerDocument.Observe(float64(calls))
}

// RecordCompressionRatio records achieved compression for a run.
// Ratio is 1 - output_runes/input_runes; values outside [0, 1] are
// clamped so that a degenerate run cannot distort the histogram.
func RecordCompressionRatio(ratio float64) {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	CompressionRatio.Observe(ratio)
}

// RecordContentFetchSuccess records a successful content fetch with its
// duration and size in bytes.
func RecordContentFetchSuccess(duration time.Duration, size int) {
	ContentFetchAttemptsTotal.WithLabelValues("success").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
	ContentFetchSize.Observe(float64(size))
}

// RecordContentFetchFailed records a failed content fetch.
func RecordContentFetchFailed(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("failure").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "insert_summary").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
