package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func histogramSum(t *testing.T, h prometheus.Histogram) float64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleSum()
}

func TestRecordDocumentSummarized(t *testing.T) {
	success := DocumentsSummarizedTotal.WithLabelValues("short", "success")
	failure := DocumentsSummarizedTotal.WithLabelValues("short", "failure")

	successBefore := counterValue(t, success)
	failureBefore := counterValue(t, failure)

	RecordDocumentSummarized("short", true)
	RecordDocumentSummarized("short", true)
	RecordDocumentSummarized("short", false)

	if got := counterValue(t, success) - successBefore; got != 2 {
		t.Errorf("success delta = %v, want 2", got)
	}
	if got := counterValue(t, failure) - failureBefore; got != 1 {
		t.Errorf("failure delta = %v, want 1", got)
	}
}

func TestRecordPipelineShape(t *testing.T) {
	chunksBefore := histogramCount(t, ChunksPerDocument)
	passesBefore := histogramCount(t, AggregationPasses)
	callsBefore := histogramCount(t, InferenceCallsPerDocument)

	RecordPipelineShape(5, 1, 6)

	if got := histogramCount(t, ChunksPerDocument) - chunksBefore; got != 1 {
		t.Errorf("ChunksPerDocument samples delta = %d, want 1", got)
	}
	if got := histogramCount(t, AggregationPasses) - passesBefore; got != 1 {
		t.Errorf("AggregationPasses samples delta = %d, want 1", got)
	}
	if got := histogramCount(t, InferenceCallsPerDocument) - callsBefore; got != 1 {
		t.Errorf("InferenceCallsPerDocument samples delta = %d, want 1", got)
	}
}

func TestRecordCompressionRatio_Clamps(t *testing.T) {
	sumBefore := histogramSum(t, CompressionRatio)
	countBefore := histogramCount(t, CompressionRatio)

	RecordCompressionRatio(-0.5) // clamped to 0
	RecordCompressionRatio(1.5)  // clamped to 1
	RecordCompressionRatio(0.75)

	if got := histogramCount(t, CompressionRatio) - countBefore; got != 3 {
		t.Fatalf("samples delta = %d, want 3", got)
	}
	if got := histogramSum(t, CompressionRatio) - sumBefore; got != 1.75 {
		t.Errorf("sum delta = %v, want 1.75 (clamped)", got)
	}
}

func TestRecordContentFetch(t *testing.T) {
	success := ContentFetchAttemptsTotal.WithLabelValues("success")
	failure := ContentFetchAttemptsTotal.WithLabelValues("failure")

	successBefore := counterValue(t, success)
	failureBefore := counterValue(t, failure)

	RecordContentFetchSuccess(120*time.Millisecond, 4096)
	RecordContentFetchFailed(30 * time.Millisecond)

	if got := counterValue(t, success) - successBefore; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := counterValue(t, failure) - failureBefore; got != 1 {
		t.Errorf("failure delta = %v, want 1", got)
	}
}
