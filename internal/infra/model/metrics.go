package model

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SummaryMetricsRecorder defines the interface for recording
// per-inference metrics. Abstracting the recorder lets tests inject a
// mock and keeps the adapters independent of the metrics system.
type SummaryMetricsRecorder interface {
	// RecordLength records the length of a generated summary in characters.
	RecordLength(length int)

	// RecordLimitExceeded increments the counter when a summary exceeds the requested bounds.
	RecordLimitExceeded()

	// RecordCompliance records whether a summary respected the requested bounds.
	RecordCompliance(withinLimit bool)

	// RecordDuration records the time taken by one inference call.
	RecordDuration(duration time.Duration)
}

// PrometheusSummaryMetrics implements SummaryMetricsRecorder using Prometheus metrics.
// This is the production implementation that records metrics to Prometheus.
type PrometheusSummaryMetrics struct {
	lengthHistogram   prometheus.Histogram
	exceededCounter   prometheus.Counter
	complianceGauge   prometheus.Gauge
	durationHistogram prometheus.Histogram
}

var (
	prometheusMetricsInstance *PrometheusSummaryMetrics
	prometheusMetricsOnce     sync.Once
)

// getOrCreateHistogram gets an existing histogram or creates a new one if it doesn't exist
func getOrCreateHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Histogram)
		}
		// If it's not an AlreadyRegisteredError, use promauto which handles this gracefully
		return promauto.NewHistogram(opts)
	}
	return h
}

// getOrCreateCounter gets an existing counter or creates a new one if it doesn't exist
func getOrCreateCounter(opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Counter)
		}
		return promauto.NewCounter(opts)
	}
	return c
}

// getOrCreateGauge gets an existing gauge or creates a new one if it doesn't exist
func getOrCreateGauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	g := prometheus.NewGauge(opts)
	if err := prometheus.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Gauge)
		}
		return promauto.NewGauge(opts)
	}
	return g
}

// NewPrometheusSummaryMetrics creates a new Prometheus-based metrics recorder.
// It initializes and registers all required Prometheus metrics.
// Uses singleton pattern to avoid duplicate metric registration in tests.
func NewPrometheusSummaryMetrics() *PrometheusSummaryMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusSummaryMetrics{
			lengthHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "inference_summary_length_characters",
				Help:    "Distribution of generated summary lengths in characters (Unicode runes)",
				Buckets: []float64{50, 100, 200, 400, 700, 1100, 1600, 2200},
			}),
			exceededCounter: getOrCreateCounter(prometheus.CounterOpts{
				Name: "inference_bounds_exceeded_total",
				Help: "Total number of generations exceeding the requested output bounds",
			}),
			complianceGauge: getOrCreateGauge(prometheus.GaugeOpts{
				Name: "inference_bounds_compliance_ratio",
				Help: "Whether the last generation respected the requested bounds (0 or 1)",
			}),
			durationHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "inference_call_duration_seconds",
				Help:    "Time taken by one model invocation",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}),
		}
	})
	return prometheusMetricsInstance
}

// RecordLength implements SummaryMetricsRecorder.RecordLength
func (p *PrometheusSummaryMetrics) RecordLength(length int) {
	p.lengthHistogram.Observe(float64(length))
}

// RecordLimitExceeded implements SummaryMetricsRecorder.RecordLimitExceeded
func (p *PrometheusSummaryMetrics) RecordLimitExceeded() {
	p.exceededCounter.Inc()
}

// RecordCompliance implements SummaryMetricsRecorder.RecordCompliance
func (p *PrometheusSummaryMetrics) RecordCompliance(withinLimit bool) {
	if withinLimit {
		p.complianceGauge.Set(1.0)
	} else {
		p.complianceGauge.Set(0.0)
	}
}

// RecordDuration implements SummaryMetricsRecorder.RecordDuration
func (p *PrometheusSummaryMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}
