// Package telemetry configures the OpenTelemetry trace pipeline.
package telemetry

import (
	"context"
	stderrors "errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/roster/internal/config"
)

// Shutdown flushes pending spans.
type Shutdown func(context.Context) error

func noop(context.Context) error { return nil }

// Setup builds a tracer provider from cfg and registers it globally.
//
// Tracing is opt-in. When tracing is disabled or no endpoint is configured,
// Setup returns the current global provider and a no-op shutdown.
func Setup(ctx context.Context, serviceName string, cfg config.TracingConfig) (trace.TracerProvider, Shutdown, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return otel.GetTracerProvider(), noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return nil, noop, err
	}

	tp, err := newProvider(ctx, serviceName, exporter)
	if err != nil {
		return nil, noop, err
	}

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp, tp.Shutdown, nil
}

// newProvider wraps exporter in a batching provider. On failure the
// exporter is shut down.
func newProvider(ctx context.Context, serviceName string, exporter sdktrace.SpanExporter, opts ...resource.Option) (*sdktrace.TracerProvider, error) {
	opts = append([]resource.Option{
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	}, opts...)

	res, err := resource.New(ctx, opts...)
	if err != nil {
		if serr := exporter.Shutdown(ctx); serr != nil {
			err = stderrors.Join(err, serr)
		}
		return nil, err
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	), nil
}
