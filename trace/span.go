package trace

import (
	"sync"
	"time"

	"github.com/kzs0/strata/attr"
)

// SpanKind represents the role of a span in a trace.
type SpanKind int

const (
	SpanKindInternal SpanKind = iota
	SpanKindServer
	SpanKindClient
	SpanKindProducer
	SpanKindConsumer
)

// SpanStatus represents the status of a span.
type SpanStatus int

const (
	StatusUnset SpanStatus = iota
	StatusOK
	StatusError
)

// Event is a timestamped annotation recorded on a span.
type Event struct {
	Name  string
	Time  time.Time
	Attrs attr.Set
}

// Link points from one span to a span in the same or another trace.
type Link struct {
	Context SpanContext
	Attrs   attr.Set
}

// ReadableSpan is the read-only view of a span handed to span
// processors. The recording *Span implements it; processors and
// exporters must not retain it past the call.
type ReadableSpan interface {
	Name() string
	SpanContext() SpanContext
	ParentSpanID() SpanID
	Kind() SpanKind
	StartTime() time.Time
	EndTime() time.Time
	Attrs() attr.Set
	Events() []Event
	Links() []Link
	Status() (SpanStatus, string)
	Resource() attr.Set
}

// Span represents a single operation within a trace.
type Span struct {
	mu sync.Mutex

	name        string
	spanContext SpanContext
	parentID    SpanID
	kind        SpanKind
	startTime   time.Time
	endTime     time.Time
	attrs       attr.Set
	events      []Event
	links       []Link
	status      SpanStatus
	statusMsg   string
	resource    attr.Set

	processor SpanProcessor
	ended     bool
}

// Name returns the span name.
func (s *Span) Name() string {
	return s.name
}

// SpanContext returns the span's immutable identity.
func (s *Span) SpanContext() SpanContext {
	return s.spanContext
}

// ParentSpanID returns the span ID of the parent, or the invalid SpanID
// for a root span.
func (s *Span) ParentSpanID() SpanID {
	return s.parentID
}

// Kind returns the span kind.
func (s *Span) Kind() SpanKind {
	return s.kind
}

// StartTime returns the span start time.
func (s *Span) StartTime() time.Time {
	return s.startTime
}

// EndTime returns the span end time, zero until End is called.
func (s *Span) EndTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endTime
}

// Attrs returns the span attributes.
func (s *Span) Attrs() attr.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attrs
}

// Events returns a copy of the span events in recording order.
func (s *Span) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	return events
}

// Links returns a copy of the span links.
func (s *Span) Links() []Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	links := make([]Link, len(s.links))
	copy(links, s.links)
	return links
}

// Status returns the span status and message.
func (s *Span) Status() (SpanStatus, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.statusMsg
}

// Resource returns the resource attributes of the owning tracer.
func (s *Span) Resource() attr.Set {
	return s.resource
}

// SetAttr adds or updates attributes on the span.
func (s *Span) SetAttr(attrs ...attr.Attr) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return
	}
	s.attrs = s.attrs.Merge(attrs...)
}

// AddEvent records an event on the span.
func (s *Span) AddEvent(name string, attrs ...attr.Attr) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return
	}
	s.events = append(s.events, Event{
		Name:  name,
		Time:  time.Now(),
		Attrs: attr.NewSet(attrs...),
	})
}

// AddLink records a link to another span context.
func (s *Span) AddLink(sc SpanContext, attrs ...attr.Attr) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return
	}
	s.links = append(s.links, Link{Context: sc, Attrs: attr.NewSet(attrs...)})
}

// RecordError records an error as an event and sets the span status.
func (s *Span) RecordError(err error, attrs ...attr.Attr) {
	if err == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return
	}

	errAttrs := append([]attr.Attr{
		attr.String("exception.type", "error"),
		attr.String("exception.message", err.Error()),
	}, attrs...)

	s.events = append(s.events, Event{
		Name:  "exception",
		Time:  time.Now(),
		Attrs: attr.NewSet(errAttrs...),
	})

	s.status = StatusError
	s.statusMsg = err.Error()
}

// SetStatus sets the span status.
func (s *Span) SetStatus(status SpanStatus, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return
	}
	s.status = status
	s.statusMsg = msg
}

// End finishes the span and hands it to the processor, synchronously on
// the calling goroutine. Only the first call has any effect.
func (s *Span) End() {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.endTime = time.Now()
	s.ended = true
	proc := s.processor
	s.mu.Unlock()

	if proc != nil {
		proc.OnEnd(s)
	}
}

// IsRecording returns true until the span has ended.
func (s *Span) IsRecording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.ended
}

// Duration returns the span duration, measured up to now while the span
// is still recording.
func (s *Span) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endTime.IsZero() {
		return time.Since(s.startTime)
	}
	return s.endTime.Sub(s.startTime)
}
