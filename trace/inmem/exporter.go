// Package inmem provides an in-memory span exporter used for
// verification and as a template for real backends.
package inmem

import (
	"sync"

	"github.com/kzs0/strata/trace"
)

// Exporter accumulates finished span data in an append-only buffer.
// All state lives behind one mutex, so Export, Reset, Shutdown, and
// Spans are linearizable with respect to each other.
type Exporter struct {
	mu      sync.Mutex
	spans   []trace.SpanData
	stopped bool
}

var _ trace.Exporter = (*Exporter)(nil)

// NewExporter creates a running in-memory exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export appends the batch and returns ExportSuccess while the exporter
// is running. Once stopped it performs no mutation and returns
// ExportFailedNotRetryable.
func (e *Exporter) Export(batch []trace.SpanData) trace.ResultCode {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return trace.ExportFailedNotRetryable
	}
	e.spans = append(e.spans, batch...)
	return trace.ExportSuccess
}

// Spans returns an independent copy of the accepted span data in arrival
// order.
func (e *Exporter) Spans() []trace.SpanData {
	e.mu.Lock()
	defer e.mu.Unlock()
	spans := make([]trace.SpanData, len(e.spans))
	copy(spans, e.spans)
	return spans
}

// Reset clears the buffer without affecting the running/stopped flag.
func (e *Exporter) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.spans = nil
}

// Shutdown clears the buffer and stops the exporter irreversibly.
// Safe to call more than once.
func (e *Exporter) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.spans = nil
	e.stopped = true
}
