package middleware

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/roster/pkg/router"
)

// Default tracer name for roster navigations.
const defaultTracerName = "roster"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "roster").
	TracerName string

	// IncludeQuery records the raw query string as a span attribute.
	// Off by default.
	IncludeQuery bool

	// Filter determines which navigations to trace.
	// If nil, all navigations are traced.
	Filter func(nav *router.Navigation) bool

	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeQuery enables recording the query string.
func WithIncludeQuery(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeQuery = include
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(nav *router.Navigation) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithTracerProvider sets the tracer provider instead of the global one.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that wraps every navigation in a span.
//
// The span context replaces the navigation's context, so later middleware
// and SpanFromNavigation see it. Errors are recorded on the span and set
// its status.
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(config.TracerName)

	return router.MiddlewareFunc(func(nav *router.Navigation, next func() error) error {
		if config.Filter != nil && !config.Filter(nav) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("roster.path", nav.Path),
		}
		if config.IncludeQuery {
			attrs = append(attrs, attribute.String("roster.query", nav.RawQuery))
		}

		ctx, span := tracer.Start(nav.Context(), formatSpanName(nav),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()
		nav.SetContext(ctx)

		err := next()

		if nav.Match != nil {
			span.SetAttributes(
				attribute.String("roster.route", nav.Match.Name()),
				attribute.String("roster.view", string(nav.Match.View())),
			)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	})
}

// SpanFromNavigation returns the span carried by the navigation's context,
// or a no-op span when tracing is off.
func SpanFromNavigation(nav *router.Navigation) trace.Span {
	return trace.SpanFromContext(nav.Context())
}

func formatSpanName(nav *router.Navigation) string {
	path := nav.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("navigate %s", path)
}
