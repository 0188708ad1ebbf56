// Package middleware provides router middleware for roster navigations.
//
// This package includes:
//   - Prometheus metrics (navigation counts, durations, errors)
//   - OpenTelemetry tracing (one span per navigation)
//   - Structured logging through log/slog
//
// All three plug into router.Router.Use:
//
//	r.Use(
//	    middleware.Logging(logger),
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	    middleware.OpenTelemetry(middleware.WithTracerName("roster")),
//	)
//
// The tracer comes from the global OpenTelemetry provider; configure it with
// otel.SetTracerProvider before the first navigation.
package middleware
