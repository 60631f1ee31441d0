package trace

import (
	"context"
	"time"

	"github.com/kzs0/strata/attr"
)

// TracerConfig configures the tracer.
type TracerConfig struct {
	// ServiceName names the instrumented service; it is attached to the
	// resource as service.name.
	ServiceName string
	// Resource contains additional resource attributes shared by every
	// span the tracer creates.
	Resource attr.Set
	// Sampler decides the sampled flag at span start. Defaults to
	// AlwaysSampler.
	Sampler Sampler
	// Processor receives span lifecycle hooks. Optional; without one,
	// spans are created but never exported.
	Processor SpanProcessor
}

// Tracer creates spans and hands their lifecycle to a SpanProcessor.
type Tracer struct {
	resource  attr.Set
	sampler   Sampler
	processor SpanProcessor
}

// NewTracer creates a new tracer.
func NewTracer(cfg TracerConfig) *Tracer {
	sampler := cfg.Sampler
	if sampler == nil {
		sampler = AlwaysSampler{}
	}

	resource := cfg.Resource
	if cfg.ServiceName != "" {
		resource = resource.Merge(attr.String("service.name", cfg.ServiceName))
	}

	return &Tracer{
		resource:  resource,
		sampler:   sampler,
		processor: cfg.Processor,
	}
}

// StartSpanOptions configures span creation.
type StartSpanOptions struct {
	Kind         SpanKind
	Attrs        []attr.Attr
	Links        []Link
	RemoteParent SpanContext
}

// StartSpanOption configures span creation.
type StartSpanOption func(*StartSpanOptions)

// WithSpanKind sets the span kind.
func WithSpanKind(kind SpanKind) StartSpanOption {
	return func(o *StartSpanOptions) {
		o.Kind = kind
	}
}

// WithAttrs sets the initial span attributes.
func WithAttrs(attrs ...attr.Attr) StartSpanOption {
	return func(o *StartSpanOptions) {
		o.Attrs = attrs
	}
}

// WithLinks records links to other span contexts at creation time.
func WithLinks(links ...Link) StartSpanOption {
	return func(o *StartSpanOptions) {
		o.Links = links
	}
}

// WithRemoteParent parents the new span under a context extracted from a
// carrier. It takes precedence over any span found in ctx.
func WithRemoteParent(sc SpanContext) StartSpanOption {
	return func(o *StartSpanOptions) {
		o.RemoteParent = sc
	}
}

// Start creates a new span and invokes the processor's OnStart hook.
// The sampler is consulted once here; its decision is encoded into the
// span context's TraceFlags and read again only at export time.
func (t *Tracer) Start(ctx context.Context, name string, opts ...StartSpanOption) (context.Context, *Span) {
	var options StartSpanOptions
	for _, opt := range opts {
		opt(&options)
	}

	parent := options.RemoteParent
	if !parent.IsValid() {
		parent = SpanContextFromContext(ctx)
	}

	var traceID TraceID
	var parentID SpanID
	var parentSampled bool
	var state TraceState

	if parent.IsValid() {
		traceID = parent.TraceID()
		parentID = parent.SpanID()
		parentSampled = parent.IsSampled()
		state = parent.TraceState()
	} else {
		traceID = NewTraceID()
	}

	result := t.sampler.ShouldSample(traceID, name, parentSampled)
	sampled := result.Decision == SamplingDecisionRecordAndSample

	span := &Span{
		name: name,
		spanContext: NewSpanContext(SpanContextConfig{
			TraceID:    traceID,
			SpanID:     NewSpanID(),
			TraceFlags: TraceFlags(0).WithSampled(sampled),
			TraceState: state,
		}),
		parentID:  parentID,
		kind:      options.Kind,
		startTime: time.Now(),
		attrs:     attr.NewSet(options.Attrs...),
		links:     options.Links,
		resource:  t.resource,
		processor: t.processor,
	}

	if t.processor != nil {
		t.processor.OnStart(span)
	}

	return ContextWithSpan(ctx, span), span
}

// Resource returns the resource attributes.
func (t *Tracer) Resource() attr.Set {
	return t.resource
}

// Shutdown releases the processor's downstream resources.
func (t *Tracer) Shutdown() {
	if t.processor != nil {
		t.processor.Shutdown()
	}
}
