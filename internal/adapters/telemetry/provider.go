// Package telemetry adapts OpenTelemetry to ports.Tracer.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Tracer = (*OTelTracer)(nil)

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	name     string
	mu       sync.RWMutex
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// NewOTelTracer creates a new OTelTracer with the given instrumentation name.
// Spans go to the global provider until Export is called.
func NewOTelTracer(name string) *OTelTracer {
	return &OTelTracer{
		name:   name,
		tracer: otel.Tracer(name),
	}
}

// NewOTelTracerWithProvider creates an OTelTracer backed by tp.
func NewOTelTracerWithProvider(name string, tp trace.TracerProvider) *OTelTracer {
	return &OTelTracer{
		name:   name,
		tracer: tp.Tracer(name),
	}
}

// Export installs an SDK provider that writes finished spans to w as JSON.
func (t *OTelTracer) Export(w io.Writer) error {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return zerr.Wrap(err, "failed to create trace exporter")
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	t.mu.Lock()
	previous := t.provider
	t.provider = tp
	t.tracer = tp.Tracer(t.name)
	t.mu.Unlock()

	if previous != nil {
		return previous.Shutdown(context.Background())
	}
	return nil
}

// Shutdown flushes and stops the exporting provider, if any.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	t.mu.Lock()
	tp := t.provider
	t.provider = nil
	t.mu.Unlock()

	if tp == nil {
		return nil
	}
	if err := tp.Shutdown(ctx); err != nil {
		return zerr.Wrap(err, "failed to shut down tracer provider")
	}
	return nil
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	t.mu.RLock()
	tracer := t.tracer
	t.mu.RUnlock()

	ctx, span := tracer.Start(ctx, name)
	s := &OTelSpan{span: span}
	for k, v := range cfg.Attributes {
		s.SetAttribute(k, v)
	}

	return ctx, s
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span trace.Span
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records err on the span and marks it failed.
func (s *OTelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case uint32:
		s.span.SetAttributes(attribute.Int64(key, int64(v)))
	case uint64:
		//nolint:gosec // Counters reported here stay far below 2^63.
		s.span.SetAttributes(attribute.Int64(key, int64(v)))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}
