package trace

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kzs0/strata/metric"
)

// SpanProcessor is the lifecycle hook invoked by a span's owner.
//
// OnEnd is called exactly once per span, synchronously on the goroutine
// that ended it. OnStart precedes OnEnd for a given span; no ordering is
// guaranteed between spans ended concurrently. Shutdown releases
// downstream resources and is safe to call more than once.
type SpanProcessor interface {
	OnStart(span ReadableSpan)
	OnEnd(span ReadableSpan)
	Shutdown()
}

// SimpleProcessorConfig configures a SimpleProcessor.
type SimpleProcessorConfig struct {
	// Exporter receives each sampled span as a singleton batch. Required.
	Exporter Exporter
	// Logger receives export-failure warnings. Defaults to a no-op logger.
	Logger *zap.Logger
	// Metrics, when set, counts exported, dropped, and failed spans.
	Metrics *metric.Pipeline
}

// SimpleProcessor forwards each sampled span to a single exporter as soon
// as it ends, one span per Export call. Unsampled spans never reach the
// exporter. Exporter failures, including panics, are contained here:
// they are logged at warn level and the span's data is dropped, so the
// caller of End never fails because telemetry export failed.
type SimpleProcessor struct {
	exporter Exporter
	logger   *zap.Logger
	metrics  *metric.Pipeline
}

var _ SpanProcessor = (*SimpleProcessor)(nil)

// NewSimpleProcessor builds a SimpleProcessor. Returns ErrInvalidArgument
// if the exporter is nil.
func NewSimpleProcessor(cfg SimpleProcessorConfig) (*SimpleProcessor, error) {
	if cfg.Exporter == nil {
		return nil, fmt.Errorf("%w: nil exporter", ErrInvalidArgument)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimpleProcessor{
		exporter: cfg.Exporter,
		logger:   logger,
		metrics:  cfg.Metrics,
	}, nil
}

// OnStart does nothing.
func (p *SimpleProcessor) OnStart(ReadableSpan) {}

// OnEnd reads the sampled flag once and, when set, snapshots the span
// and exports it. Never panics and never returns an error to the caller.
func (p *SimpleProcessor) OnEnd(span ReadableSpan) {
	sc := span.SpanContext()
	if !sc.TraceFlags().IsSampled() {
		if p.metrics != nil {
			p.metrics.SpanDropped()
		}
		return
	}

	defer func() {
		if r := recover(); r != nil {
			if p.metrics != nil {
				p.metrics.ExportFailed(false)
			}
			p.logger.Warn("span exporter panicked",
				zap.Any("panic", r),
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
				zap.String("span_name", span.Name()),
			)
		}
	}()

	code := p.exporter.Export([]SpanData{Snapshot(span)})
	switch code {
	case ExportSuccess:
		if p.metrics != nil {
			p.metrics.SpanExported()
		}
	default:
		if p.metrics != nil {
			p.metrics.ExportFailed(code == ExportFailedRetryable)
		}
		p.logger.Warn("span export failed",
			zap.Stringer("result", code),
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
			zap.String("span_name", span.Name()),
		)
	}
}

// Shutdown delegates to the exporter.
func (p *SimpleProcessor) Shutdown() {
	p.exporter.Shutdown()
}
