// Package httptrace carries trace context across HTTP boundaries: a
// server middleware that continues a remote trace and a client
// transport that propagates the current one.
package httptrace

import (
	"fmt"
	"net/http"

	"github.com/kzs0/strata/attr"
	"github.com/kzs0/strata/trace"
	"github.com/kzs0/strata/trace/propagation"
)

// Middleware wraps handler so each request runs inside a server span.
// A valid traceparent header continues the remote trace; otherwise a
// new one starts.
func Middleware(tracer *trace.Tracer, handler http.Handler) http.Handler {
	prop := propagation.TraceContext{}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		opts := []trace.StartSpanOption{
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttrs(
				attr.String("http.method", r.Method),
				attr.String("http.path", r.URL.Path),
				attr.String("http.host", r.Host),
			),
		}

		remote, err := prop.Extract(propagation.HeaderCarrier(r.Header))
		if err == nil && remote.IsValid() {
			opts = append(opts, trace.WithRemoteParent(remote))
		}

		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path, opts...)
		defer span.End()

		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		handler.ServeHTTP(rw, r.WithContext(ctx))

		span.SetAttr(attr.Int("http.status_code", rw.status))
		if rw.status >= http.StatusInternalServerError {
			span.SetStatus(trace.StatusError, fmt.Sprintf("HTTP %d", rw.status))
		}
	})
}

// Transport is an http.RoundTripper that opens a client span per request
// and injects its context into the outgoing headers.
type Transport struct {
	// Base is the underlying round tripper. Defaults to
	// http.DefaultTransport.
	Base http.RoundTripper
	// Tracer creates the client spans. Required.
	Tracer *trace.Tracer
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	ctx, span := t.Tracer.Start(req.Context(), req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttrs(
			attr.String("http.method", req.Method),
			attr.String("http.url", req.URL.String()),
		),
	)
	defer span.End()

	// Per RoundTripper contract the request must not be mutated.
	req = req.Clone(ctx)
	prop := propagation.TraceContext{}
	if err := prop.Inject(span.SpanContext(), propagation.HeaderCarrier(req.Header)); err != nil {
		span.RecordError(err)
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttr(attr.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusInternalServerError {
		span.SetStatus(trace.StatusError, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}
	return resp, nil
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}
