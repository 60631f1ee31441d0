package propagation

import (
	"fmt"

	"github.com/kzs0/strata/trace"
)

// Header names read and written by the TraceContext propagator.
const (
	TraceParentHeader = "traceparent"
	TraceStateHeader  = "tracestate"
)

// traceparent layout: version(2) '-' traceid(32) '-' spanid(16) '-' flags(2).
// Offsets are fixed; the version emitted is always "00".
const (
	versionSize     = 2
	delimiter       = '-'
	traceIDOffset   = versionSize + 1
	spanIDOffset    = traceIDOffset + 2*trace.TraceIDSize + 1
	flagsOffset     = spanIDOffset + 2*trace.SpanIDSize + 1
	traceParentSize = flagsOffset + 2
)

// TraceContext propagates span identity using the W3C trace-context
// headers. The zero value is ready to use.
type TraceContext struct{}

// Fields returns the header names this propagator reads and writes, so a
// composite propagator can merge field lists.
func (TraceContext) Fields() []string {
	return []string{TraceParentHeader, TraceStateHeader}
}

// Inject writes the traceparent header for sc into the carrier, and the
// tracestate header when the entry list is non-empty. An empty entry
// list writes no tracestate key at all. Returns ErrInvalidArgument when
// the carrier is nil.
func (TraceContext) Inject(sc trace.SpanContext, carrier Carrier) error {
	if carrier == nil {
		return fmt.Errorf("%w: nil carrier", trace.ErrInvalidArgument)
	}

	var buf [traceParentSize]byte
	buf[0] = '0'
	buf[1] = '0'
	buf[versionSize] = delimiter
	sc.TraceID().CopyHexTo(buf[:], traceIDOffset)
	buf[spanIDOffset-1] = delimiter
	sc.SpanID().CopyHexTo(buf[:], spanIDOffset)
	buf[flagsOffset-1] = delimiter
	sc.TraceFlags().CopyHexTo(buf[:], flagsOffset)
	carrier.Set(TraceParentHeader, string(buf[:]))

	if state := sc.TraceState(); state.Len() > 0 {
		carrier.Set(TraceStateHeader, state.String())
	}
	return nil
}

// Extract reads the trace-context headers from the carrier.
//
// A missing traceparent is not an error: it is the normal "no parent"
// case and yields the invalid SpanContext. A present but malformed
// traceparent returns ErrInvalidFormat carrying the offending value.
// A malformed tracestate is ignored and the parsed identity kept, per
// the W3C recommendation. Every context produced from a valid header is
// marked remote.
func (TraceContext) Extract(carrier Carrier) (trace.SpanContext, error) {
	if carrier == nil {
		return trace.SpanContext{}, fmt.Errorf("%w: nil carrier", trace.ErrInvalidArgument)
	}

	traceParent := carrier.Get(TraceParentHeader)
	if traceParent == "" {
		return trace.SpanContext{}, nil
	}

	traceID, spanID, flags, err := parseTraceParent(traceParent)
	if err != nil {
		return trace.SpanContext{}, err
	}

	var state trace.TraceState
	if raw := carrier.Get(TraceStateHeader); raw != "" {
		if parsed, err := trace.ParseTraceState(raw); err == nil {
			state = parsed
		}
	}

	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: flags,
		TraceState: state,
		Remote:     true,
	}), nil
}

// parseTraceParent validates the fixed layout and decodes the three
// fields. Anything after the flags field is tolerated when introduced by
// a delimiter, for forward compatibility with future versions, and
// ignored.
func parseTraceParent(h string) (trace.TraceID, trace.SpanID, trace.TraceFlags, error) {
	var zeroTraceID trace.TraceID
	var zeroSpanID trace.SpanID

	malformed := len(h) < traceParentSize ||
		h[versionSize] != delimiter ||
		h[spanIDOffset-1] != delimiter ||
		h[flagsOffset-1] != delimiter ||
		(len(h) > traceParentSize && h[traceParentSize] != delimiter)
	if malformed {
		return zeroTraceID, zeroSpanID, 0, fmt.Errorf("%w: malformed traceparent %q", trace.ErrInvalidFormat, h)
	}

	traceID, err := trace.TraceIDFromHex(h, traceIDOffset)
	if err != nil {
		return zeroTraceID, zeroSpanID, 0, fmt.Errorf("traceparent %q: %w", h, err)
	}
	spanID, err := trace.SpanIDFromHex(h, spanIDOffset)
	if err != nil {
		return zeroTraceID, zeroSpanID, 0, fmt.Errorf("traceparent %q: %w", h, err)
	}
	flags, err := trace.TraceFlagsFromHex(h, flagsOffset)
	if err != nil {
		return zeroTraceID, zeroSpanID, 0, fmt.Errorf("traceparent %q: %w", h, err)
	}
	return traceID, spanID, flags, nil
}
