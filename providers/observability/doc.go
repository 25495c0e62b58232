// Package observability defines the tracing, metrics and structured logging
// interfaces used by the llmsdk client.
//
// [Provider] composes [Tracer], [Metrics] and [Logger] into a single
// injectable dependency. The active [Span] travels through a
// [context.Context] via [ContextWithSpan] and [SpanFromContext], so low-level
// HTTP helpers can annotate the request without knowing the observer.
//
// semconv.go holds the attribute keys, span names and metric names shared by
// every component.
package observability
