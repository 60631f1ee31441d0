// Package strata assembles the tracing SDK core: configuration, logger,
// sampler, export pipeline, and tracer.
package strata

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kzs0/strata/attr"
	"github.com/kzs0/strata/log"
	"github.com/kzs0/strata/metric"
	"github.com/kzs0/strata/trace"
)

// SDK bundles the wired-together tracing components.
type SDK struct {
	logger    *zap.Logger
	tracer    *trace.Tracer
	processor trace.SpanProcessor
}

// Option customizes SDK assembly.
type Option func(*options)

type options struct {
	registerer prometheus.Registerer
	resource   []attr.Attr
}

// WithRegisterer sets the Prometheus registerer for pipeline metrics.
// Defaults to prometheus.DefaultRegisterer.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithResource adds resource attributes shared by every span.
func WithResource(attrs ...attr.Attr) Option {
	return func(o *options) {
		o.resource = attrs
	}
}

// New wires a logger, sampler, processor, and tracer around the given
// exporter according to cfg.
func New(cfg Config, exporter trace.Exporter, opts ...Option) (*SDK, error) {
	var o options
	o.registerer = prometheus.DefaultRegisterer
	for _, opt := range opts {
		opt(&o)
	}

	logger, err := log.New(log.Config{Level: cfg.LogLevel, Development: cfg.LogDev})
	if err != nil {
		return nil, fmt.Errorf("strata: build logger: %w", err)
	}

	sampler, err := samplerFor(cfg)
	if err != nil {
		return nil, err
	}

	var pipeline *metric.Pipeline
	if cfg.Metrics {
		pipeline = metric.NewPipeline(o.registerer)
	}

	processor, err := trace.NewSimpleProcessor(trace.SimpleProcessorConfig{
		Exporter: exporter,
		Logger:   logger,
		Metrics:  pipeline,
	})
	if err != nil {
		return nil, err
	}

	tracer := trace.NewTracer(trace.TracerConfig{
		ServiceName: cfg.Service,
		Resource:    attr.NewSet(o.resource...),
		Sampler:     sampler,
		Processor:   processor,
	})

	return &SDK{
		logger:    logger,
		tracer:    tracer,
		processor: processor,
	}, nil
}

func samplerFor(cfg Config) (trace.Sampler, error) {
	switch cfg.Sampler {
	case "", "always":
		return trace.AlwaysSampler{}, nil
	case "never":
		return trace.NeverSampler{}, nil
	case "ratio":
		return trace.NewRatioSampler(cfg.SamplerRatio), nil
	case "parent":
		return trace.NewParentBasedSampler(trace.AlwaysSampler{}), nil
	}
	return nil, fmt.Errorf("strata: unknown sampler %q", cfg.Sampler)
}

// Tracer returns the assembled tracer.
func (s *SDK) Tracer() *trace.Tracer {
	return s.tracer
}

// Logger returns the SDK logger.
func (s *SDK) Logger() *zap.Logger {
	return s.logger
}

// Shutdown releases the export pipeline's downstream resources and
// flushes the logger. Safe to call more than once.
func (s *SDK) Shutdown() {
	s.processor.Shutdown()
	_ = s.logger.Sync()
}
