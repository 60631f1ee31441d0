package trace

import (
	"time"

	"github.com/kzs0/strata/attr"
)

const nanosPerSecond = int64(time.Second)

// Timestamp is a wall-clock instant split into whole seconds and the
// nanosecond remainder.
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

// TimedEvent pairs a converted timestamp with the event it annotates.
type TimedEvent struct {
	Timestamp Timestamp
	Name      string
	Attrs     attr.Set
}

// SpanData is the immutable snapshot of a finished span handed to
// exporters. It is built exactly once per span by Snapshot and never
// mutated afterwards.
type SpanData struct {
	Name           string
	Context        SpanContext
	ParentSpanID   SpanID
	Kind           SpanKind
	StartTimestamp Timestamp
	EndTimestamp   Timestamp
	Status         SpanStatus
	StatusMessage  string
	Attrs          attr.Set
	Links          []Link
	Events         []TimedEvent
	Resource       attr.Set
}

// Snapshot adapts a live span into an immutable SpanData. Event order is
// preserved exactly as recorded.
func Snapshot(span ReadableSpan) SpanData {
	status, msg := span.Status()
	return SpanData{
		Name:           span.Name(),
		Context:        span.SpanContext(),
		ParentSpanID:   span.ParentSpanID(),
		Kind:           span.Kind(),
		StartTimestamp: nanosToTimestamp(span.StartTime().UnixNano()),
		EndTimestamp:   nanosToTimestamp(span.EndTime().UnixNano()),
		Status:         status,
		StatusMessage:  msg,
		Attrs:          span.Attrs(),
		Links:          span.Links(),
		Events:         adaptEvents(span.Events()),
		Resource:       span.Resource(),
	}
}

func adaptEvents(events []Event) []TimedEvent {
	if len(events) == 0 {
		return nil
	}
	result := make([]TimedEvent, len(events))
	for i, e := range events {
		result[i] = TimedEvent{
			Timestamp: nanosToTimestamp(e.Time.UnixNano()),
			Name:      e.Name,
			Attrs:     e.Attrs,
		}
	}
	return result
}

// nanosToTimestamp converts a nanosecond instant by integer division;
// the remainder truncates toward zero and is bit-reproducible.
func nanosToTimestamp(n int64) Timestamp {
	return Timestamp{
		Seconds: n / nanosPerSecond,
		Nanos:   int32(n % nanosPerSecond),
	}
}
