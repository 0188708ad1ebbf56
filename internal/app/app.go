// Package app assembles roster from its configuration: the route table and
// its middleware, the session manager, telemetry and the HTTP server.
package app

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vango-dev/roster/internal/config"
	"github.com/vango-dev/roster/internal/server"
	"github.com/vango-dev/roster/internal/session"
	"github.com/vango-dev/roster/internal/telemetry"
	"github.com/vango-dev/roster/pkg/middleware"
	"github.com/vango-dev/roster/pkg/router"
)

// App is a configured, not yet running, roster instance.
type App struct {
	config   *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	router   *router.Router
	sessions *session.Manager
	server   *server.Server

	shutdownTracing telemetry.Shutdown
}

// New wires an App from cfg. cfg must already be validated.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		config:   cfg,
		logger:   logger.With("component", "app"),
		registry: prometheus.NewRegistry(),
	}

	var mw []router.Middleware
	if cfg.Metrics.Enabled {
		a.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		mw = append(mw, middleware.Prometheus(middleware.WithRegistry(a.registry)))
	}

	tp, shutdown, err := telemetry.Setup(ctx, cfg.Name, cfg.Tracing)
	if err != nil {
		return nil, err
	}
	a.shutdownTracing = shutdown
	if cfg.Tracing.Enabled {
		mw = append(mw, middleware.OpenTelemetry(
			middleware.WithTracerProvider(tp),
			middleware.WithTracerName(cfg.Tracing.TracerName),
		))
	}
	mw = append(mw, middleware.Logging(logger))

	a.router, err = NewRouter(mw...)
	if err != nil {
		return nil, err
	}

	sessionOpts := []session.Option{session.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		sessionOpts = append(sessionOpts, session.WithRegistry(a.registry))
	}
	a.sessions = session.NewManager(sessionOpts...)

	serverConfig := server.DefaultConfig()
	serverConfig.Address = cfg.Address()
	if cfg.Metrics.Enabled {
		serverConfig.MetricsPath = cfg.Metrics.Path
		serverConfig.Gatherer = a.registry
	}
	a.server = server.New(a.router, a.sessions, serverConfig, logger)

	return a, nil
}

// Router returns the configured route table.
func (a *App) Router() *router.Router { return a.router }

// Sessions returns the session manager.
func (a *App) Sessions() *session.Manager { return a.sessions }

// Server returns the HTTP server.
func (a *App) Server() *server.Server { return a.server }

// Run serves HTTP and sweeps idle sessions until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	idle, err := a.config.IdleTimeout()
	if err != nil {
		return err
	}
	interval, err := a.config.SweepInterval()
	if err != nil {
		return err
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go a.sessions.Run(sweepCtx, interval, idle)

	a.logger.Info("starting", "address", a.config.URL(), "idle_timeout", idle)
	err = a.server.Run(ctx)

	if terr := a.shutdownTracing(context.Background()); terr != nil {
		a.logger.Warn("tracer shutdown failed", "error", terr)
	}
	return err
}
