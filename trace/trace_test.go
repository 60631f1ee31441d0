package trace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kzs0/strata/attr"
)

type countingProcessor struct {
	started []ReadableSpan
	ended   []ReadableSpan
}

func (p *countingProcessor) OnStart(span ReadableSpan) { p.started = append(p.started, span) }
func (p *countingProcessor) OnEnd(span ReadableSpan)   { p.ended = append(p.ended, span) }
func (p *countingProcessor) Shutdown()                 {}

func TestTracerStartSpan(t *testing.T) {
	tracer := NewTracer(TracerConfig{ServiceName: "test-service"})

	ctx, span := tracer.Start(context.Background(), "test.operation")
	defer span.End()

	assert.Equal(t, "test.operation", span.Name())
	assert.True(t, span.SpanContext().TraceID().IsValid())
	assert.True(t, span.SpanContext().SpanID().IsValid())
	assert.False(t, span.ParentSpanID().IsValid(), "root span has no parent")
	assert.True(t, span.SpanContext().IsSampled(), "default sampler samples everything")
	assert.False(t, span.SpanContext().IsRemote())

	assert.Same(t, span, SpanFromContext(ctx))

	v, ok := span.Resource().Get("service.name")
	require.True(t, ok)
	assert.Equal(t, "test-service", v.AsString())
}

func TestNestedSpans(t *testing.T) {
	tracer := NewTracer(TracerConfig{ServiceName: "test-service"})

	ctx, parent := tracer.Start(context.Background(), "parent")
	defer parent.End()

	_, child := tracer.Start(ctx, "child")
	defer child.End()

	assert.Equal(t, parent.SpanContext().TraceID(), child.SpanContext().TraceID())
	assert.Equal(t, parent.SpanContext().SpanID(), child.ParentSpanID())
	assert.NotEqual(t, parent.SpanContext().SpanID(), child.SpanContext().SpanID())
}

func TestStartWithRemoteParent(t *testing.T) {
	tracer := NewTracer(TracerConfig{Sampler: NewParentBasedSampler(NeverSampler{})})

	remote := NewSpanContext(SpanContextConfig{
		TraceID:    NewTraceID(),
		SpanID:     NewSpanID(),
		TraceFlags: FlagsSampled,
		TraceState: NewTraceState(TraceStateEntry{Key: "rojo", Value: "00"}),
		Remote:     true,
	})

	_, span := tracer.Start(context.Background(), "handler", WithRemoteParent(remote))
	defer span.End()

	sc := span.SpanContext()
	assert.Equal(t, remote.TraceID(), sc.TraceID())
	assert.Equal(t, remote.SpanID(), span.ParentSpanID())
	assert.True(t, sc.IsSampled(), "parent-based sampler follows the remote sampled flag")
	assert.False(t, sc.IsRemote(), "the local child itself is not remote")

	v, ok := sc.TraceState().Get("rojo")
	require.True(t, ok)
	assert.Equal(t, "00", v)
}

func TestNeverSamplerClearsFlag(t *testing.T) {
	tracer := NewTracer(TracerConfig{Sampler: NeverSampler{}})

	_, span := tracer.Start(context.Background(), "unsampled")
	defer span.End()

	assert.False(t, span.SpanContext().IsSampled())
	assert.True(t, span.SpanContext().IsValid(), "unsampled spans still carry identity")
}

func TestEndInvokesProcessorExactlyOnce(t *testing.T) {
	proc := &countingProcessor{}
	tracer := NewTracer(TracerConfig{Processor: proc})

	_, span := tracer.Start(context.Background(), "once")
	require.Len(t, proc.started, 1)

	span.End()
	span.End()
	span.End()

	assert.Len(t, proc.ended, 1)
	assert.Same(t, span, proc.ended[0].(*Span))
}

func TestSpanMutationAfterEndIsIgnored(t *testing.T) {
	tracer := NewTracer(TracerConfig{})

	_, span := tracer.Start(context.Background(), "done")
	span.End()

	span.SetAttr(attr.String("late", "value"))
	span.AddEvent("late-event")
	span.SetStatus(StatusError, "late")

	assert.False(t, span.Attrs().Has("late"))
	assert.Empty(t, span.Events())
	status, _ := span.Status()
	assert.Equal(t, StatusUnset, status)
	assert.False(t, span.IsRecording())
}

func TestRecordError(t *testing.T) {
	tracer := NewTracer(TracerConfig{})

	_, span := tracer.Start(context.Background(), "failing")
	span.RecordError(errors.New("kaput"))
	span.End()

	status, msg := span.Status()
	assert.Equal(t, StatusError, status)
	assert.Equal(t, "kaput", msg)

	events := span.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "exception", events[0].Name)

	v, ok := events[0].Attrs.Get("exception.message")
	require.True(t, ok)
	assert.Equal(t, "kaput", v.AsString())
}

func TestSpanLinks(t *testing.T) {
	tracer := NewTracer(TracerConfig{})
	other := NewSpanContext(SpanContextConfig{TraceID: NewTraceID(), SpanID: NewSpanID()})

	_, span := tracer.Start(context.Background(), "linked", WithLinks(Link{Context: other}))
	span.AddLink(other, attr.String("relation", "follows-from"))
	span.End()

	links := span.Links()
	require.Len(t, links, 2)
	assert.Equal(t, other, links[0].Context)
	assert.True(t, links[1].Attrs.Has("relation"))
}

func TestSamplers(t *testing.T) {
	id := NewTraceID()

	assert.Equal(t, SamplingDecisionRecordAndSample, AlwaysSampler{}.ShouldSample(id, "x", false).Decision)
	assert.Equal(t, SamplingDecisionDrop, NeverSampler{}.ShouldSample(id, "x", true).Decision)

	assert.Equal(t, SamplingDecisionRecordAndSample, NewRatioSampler(1).ShouldSample(id, "x", false).Decision)
	assert.Equal(t, SamplingDecisionDrop, NewRatioSampler(0).ShouldSample(id, "x", false).Decision)

	parentBased := NewParentBasedSampler(NeverSampler{})
	assert.Equal(t, SamplingDecisionRecordAndSample, parentBased.ShouldSample(id, "x", true).Decision)
	assert.Equal(t, SamplingDecisionDrop, parentBased.ShouldSample(id, "x", false).Decision)
}
