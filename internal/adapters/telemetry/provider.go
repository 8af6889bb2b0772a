package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/rustci/internal/core/ports"
)

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
// It owns its TracerProvider so concurrent invocations never share processors.
type OTelTracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer

	mu       sync.RWMutex
	renderer ports.Renderer
}

// NewOTelTracer creates a new OTelTracer with the given instrumentation name.
// Every span is reported to the given processors.
func NewOTelTracer(name string, processors ...sdktrace.SpanProcessor) *OTelTracer {
	opts := []sdktrace.TracerProviderOption{sdktrace.WithSampler(sdktrace.AlwaysSample())}
	for _, p := range processors {
		if p != nil {
			opts = append(opts, sdktrace.WithSpanProcessor(p))
		}
	}
	tp := sdktrace.NewTracerProvider(opts...)
	return &OTelTracer{
		provider: tp,
		tracer:   tp.Tracer(name),
	}
}

// WithRenderer streams span output and plans to r.
func (t *OTelTracer) WithRenderer(r ports.Renderer) *OTelTracer {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderer = r
	return t
}

// Shutdown flushes and stops every span processor.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, span := t.tracer.Start(ctx, name)
	s := &OTelSpan{span: span}
	for k, v := range cfg.Attributes {
		s.SetAttribute(k, v)
	}

	t.mu.RLock()
	r := t.renderer
	t.mu.RUnlock()

	if r != nil {
		spanID := span.SpanContext().SpanID().String()
		s.batcher = NewLogBatcher(0, 0, func(data []byte) {
			r.OnTaskLog(spanID, data)
		})
	}

	return ctx, s
}

// EmitPlan records the planned steps on the current span and announces them to the renderer.
func (t *OTelTracer) EmitPlan(ctx context.Context, task string, steps []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.String(ports.AttrTask, task),
			attribute.StringSlice("steps", steps),
		))
	}

	t.mu.RLock()
	r := t.renderer
	t.mu.RUnlock()

	if r != nil {
		r.OnPlanEmit(task, steps)
	}
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span    trace.Span
	batcher *LogBatcher
}

// End completes the span. Buffered output is flushed first.
func (s *OTelSpan) End() {
	if s.batcher != nil {
		_ = s.batcher.Close()
	}
	s.span.End()
}

// RecordError records an error for the span.
func (s *OTelSpan) RecordError(err error) {
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

// Write satisfies io.Writer. Output goes to the renderer when one is attached,
// otherwise it is recorded as a span event.
func (s *OTelSpan) Write(p []byte) (n int, err error) {
	if s.batcher != nil {
		return s.batcher.Write(p)
	}
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}
