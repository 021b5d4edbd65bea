// Package tracing provides OpenTelemetry tracing integration.
//
// The global tracer names spans for the summarization pipeline and the
// HTTP layer. Middleware extracts W3C trace context from incoming
// requests and reflects the trace ID back in the X-Trace-Id header.
//
// Example usage:
//
//	import "content-summarizer/internal/observability/tracing"
//
//	func (s *Service) Summarize(ctx context.Context, ...) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "pipeline.summarize")
//	    defer span.End()
//	    // ...
//	}
package tracing
