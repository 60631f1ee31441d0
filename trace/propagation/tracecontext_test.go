package propagation

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kzs0/strata/trace"
)

const (
	sampleTraceParent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"
	sampleTraceID     = "4bf92f3577b34da6a3ce929d0e0e4736"
	sampleSpanID      = "00f067aa0ba902b7"
)

func sampleContext(t *testing.T) trace.SpanContext {
	t.Helper()
	traceID, err := trace.TraceIDFromHex(sampleTraceID, 0)
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex(sampleSpanID, 0)
	require.NoError(t, err)
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
}

func TestExtractValidTraceParent(t *testing.T) {
	carrier := MapCarrier{TraceParentHeader: sampleTraceParent}

	sc, err := TraceContext{}.Extract(carrier)
	require.NoError(t, err)

	assert.Equal(t, sampleTraceID, sc.TraceID().String())
	assert.Equal(t, sampleSpanID, sc.SpanID().String())
	assert.True(t, sc.IsSampled())
	assert.True(t, sc.IsRemote())
	assert.Equal(t, 0, sc.TraceState().Len())
}

func TestExtractMissingHeaderIsNotAnError(t *testing.T) {
	sc, err := TraceContext{}.Extract(MapCarrier{})
	require.NoError(t, err)
	assert.False(t, sc.IsValid())
	assert.False(t, sc.IsRemote())
}

func TestExtractMalformedTraceParent(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "delimiter in wrong position", header: "00=4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"},
		{name: "second delimiter misplaced", header: "00-4bf92f3577b34da6a3ce929d0e0e473-600f067aa0ba902b7-01"},
		{name: "too short", header: "00-4bf92f3577b34da6-00f067aa0ba902b7-01"},
		{name: "longer without extension delimiter", header: sampleTraceParent + "x"},
		{name: "uppercase trace id", header: "00-4BF92F3577B34DA6A3CE929D0E0E4736-00f067aa0ba902b7-01"},
		{name: "non-hex flags", header: "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-0x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TraceContext{}.Extract(MapCarrier{TraceParentHeader: tt.header})
			assert.ErrorIs(t, err, trace.ErrInvalidFormat)
		})
	}
}

func TestExtractToleratesFutureVersionSuffix(t *testing.T) {
	carrier := MapCarrier{TraceParentHeader: sampleTraceParent + "-extra-fields"}

	sc, err := TraceContext{}.Extract(carrier)
	require.NoError(t, err)
	assert.Equal(t, sampleTraceID, sc.TraceID().String())
	assert.True(t, sc.IsRemote())
}

func TestInjectWritesExactHeader(t *testing.T) {
	carrier := MapCarrier{}

	require.NoError(t, TraceContext{}.Inject(sampleContext(t), carrier))

	assert.Equal(t, sampleTraceParent, carrier[TraceParentHeader])
	_, hasState := carrier[TraceStateHeader]
	assert.False(t, hasState, "empty trace state must not write a tracestate key")
	assert.Len(t, carrier[TraceParentHeader], 55)
}

func TestTraceStateRoundTrip(t *testing.T) {
	carrier := MapCarrier{
		TraceParentHeader: sampleTraceParent,
		TraceStateHeader:  "rojo=00,congo=t61",
	}

	sc, err := TraceContext{}.Extract(carrier)
	require.NoError(t, err)
	require.Equal(t, 2, sc.TraceState().Len())

	out := MapCarrier{}
	require.NoError(t, TraceContext{}.Inject(sc, out))
	assert.Equal(t, "rojo=00,congo=t61", out[TraceStateHeader])
	assert.Equal(t, sampleTraceParent, out[TraceParentHeader])
}

func TestExtractIgnoresMalformedTraceState(t *testing.T) {
	carrier := MapCarrier{
		TraceParentHeader: sampleTraceParent,
		TraceStateHeader:  "not a tracestate",
	}

	sc, err := TraceContext{}.Extract(carrier)
	require.NoError(t, err)
	assert.True(t, sc.IsValid())
	assert.Equal(t, 0, sc.TraceState().Len())
}

func TestNilCarrier(t *testing.T) {
	_, err := TraceContext{}.Extract(nil)
	assert.ErrorIs(t, err, trace.ErrInvalidArgument)

	err = TraceContext{}.Inject(sampleContext(t), nil)
	assert.ErrorIs(t, err, trace.ErrInvalidArgument)
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{"traceparent", "tracestate"}, TraceContext{}.Fields())
}

func TestHeaderCarrier(t *testing.T) {
	header := http.Header{}
	carrier := HeaderCarrier(header)

	require.NoError(t, TraceContext{}.Inject(sampleContext(t), carrier))
	assert.Equal(t, sampleTraceParent, header.Get("Traceparent"))

	sc, err := TraceContext{}.Extract(carrier)
	require.NoError(t, err)
	assert.Equal(t, sampleTraceID, sc.TraceID().String())
}
