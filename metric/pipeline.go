// Package metric exposes self-accounting for the span export pipeline
// as Prometheus collectors.
package metric

import "github.com/prometheus/client_golang/prometheus"

// Pipeline counts the outcomes of span export: spans accepted by the
// exporter, spans dropped because they were unsampled, and failed
// export attempts partitioned by retryability.
type Pipeline struct {
	exported prometheus.Counter
	dropped  prometheus.Counter
	failures *prometheus.CounterVec
}

// NewPipeline builds the pipeline counters and registers them with reg.
// Pass prometheus.DefaultRegisterer for process-wide exposition.
func NewPipeline(reg prometheus.Registerer) *Pipeline {
	p := &Pipeline{
		exported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "strata",
			Name:      "spans_exported_total",
			Help:      "Spans accepted by the exporter.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "strata",
			Name:      "spans_dropped_total",
			Help:      "Spans dropped at end because they were unsampled.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "strata",
			Name:      "span_export_failures_total",
			Help:      "Failed span export attempts.",
		}, []string{"retryable"}),
	}
	if reg != nil {
		reg.MustRegister(p.exported, p.dropped, p.failures)
	}
	return p
}

// SpanExported records a span accepted by the exporter.
func (p *Pipeline) SpanExported() {
	p.exported.Inc()
}

// SpanDropped records an unsampled span that never reached the exporter.
func (p *Pipeline) SpanDropped() {
	p.dropped.Inc()
}

// ExportFailed records a failed export attempt.
func (p *Pipeline) ExportFailed(retryable bool) {
	label := "false"
	if retryable {
		label = "true"
	}
	p.failures.WithLabelValues(label).Inc()
}
