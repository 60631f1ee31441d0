package trace

import "context"

// SpanContext is the immutable identity of a span: trace ID, span ID,
// flags, vendor trace state, and whether the context arrived from a
// remote peer. The zero value is the canonical invalid context.
type SpanContext struct {
	traceID    TraceID
	spanID     SpanID
	traceFlags TraceFlags
	traceState TraceState
	remote     bool
}

// SpanContextConfig carries the fields for NewSpanContext.
type SpanContextConfig struct {
	TraceID    TraceID
	SpanID     SpanID
	TraceFlags TraceFlags
	TraceState TraceState
	Remote     bool
}

// NewSpanContext builds a SpanContext. Construction always succeeds; a
// context whose identifiers are all-zero is simply reported as not valid.
func NewSpanContext(cfg SpanContextConfig) SpanContext {
	return SpanContext{
		traceID:    cfg.TraceID,
		spanID:     cfg.SpanID,
		traceFlags: cfg.TraceFlags,
		traceState: cfg.TraceState,
		remote:     cfg.Remote,
	}
}

// TraceID returns the trace ID.
func (sc SpanContext) TraceID() TraceID {
	return sc.traceID
}

// SpanID returns the span ID.
func (sc SpanContext) SpanID() SpanID {
	return sc.spanID
}

// TraceFlags returns the options bitfield.
func (sc SpanContext) TraceFlags() TraceFlags {
	return sc.traceFlags
}

// TraceState returns the vendor trace state.
func (sc SpanContext) TraceState() TraceState {
	return sc.traceState
}

// IsRemote reports whether the context was extracted from a carrier
// rather than created by a local tracer.
func (sc SpanContext) IsRemote() bool {
	return sc.remote
}

// IsSampled reports whether the sampled flag is set.
func (sc SpanContext) IsSampled() bool {
	return sc.traceFlags.IsSampled()
}

// IsValid reports whether both identifiers are non-zero.
func (sc SpanContext) IsValid() bool {
	return sc.traceID.IsValid() && sc.spanID.IsValid()
}

type contextKey int

const spanKey contextKey = iota

// ContextWithSpan returns a new context with the span attached.
func ContextWithSpan(ctx context.Context, span *Span) context.Context {
	return context.WithValue(ctx, spanKey, span)
}

// SpanFromContext returns the span from the context, or nil if none.
func SpanFromContext(ctx context.Context) *Span {
	if span, ok := ctx.Value(spanKey).(*Span); ok {
		return span
	}
	return nil
}

// SpanContextFromContext returns the span context of the active span, or
// the invalid SpanContext if the context carries no span.
func SpanContextFromContext(ctx context.Context) SpanContext {
	span := SpanFromContext(ctx)
	if span == nil {
		return SpanContext{}
	}
	return span.SpanContext()
}
