// Package server exposes the route table and the per-session search stores
// over HTTP.
//
// Routes:
//
//	GET    /healthz                  liveness probe
//	GET    /metrics                  Prometheus metrics (optional)
//	GET    /api/routes               route table
//	GET    /api/navigate/*           resolve a path and query to a view
//	GET    /api/stores               store IDs
//	DELETE /api/stores               clear every store
//	GET    /api/stores/{id}          store snapshot
//	PATCH  /api/stores/{id}          partial update
//	DELETE /api/stores/{id}          clear
//	GET    /api/stores/{id}/watch    WebSocket stream of snapshots
//
// Store endpoints are scoped to the session named by the roster_session
// cookie. A session is created on first use.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/roster/internal/session"
	"github.com/vango-dev/roster/pkg/router"
)

// SessionCookieName is the cookie carrying the session ID.
const SessionCookieName = "roster_session"

// Config holds HTTP server settings.
type Config struct {
	// Address is the listen address (host:port).
	Address string

	// MetricsPath serves Gatherer when both are set.
	MetricsPath string
	Gatherer    prometheus.Gatherer

	// SecureCookies marks the session cookie Secure.
	SecureCookies bool

	// CheckOrigin validates WebSocket handshakes. Nil accepts same-origin
	// requests only.
	CheckOrigin func(r *http.Request) bool

	ReadHeaderTimeout time.Duration

	// WriteTimeout bounds each WebSocket write. http.Server.WriteTimeout
	// stays unset because it would cut off long-lived watch connections.
	WriteTimeout time.Duration

	// WatchPingPeriod is how often a watch connection is pinged. Each ping
	// also marks the connection's session as used.
	WatchPingPeriod time.Duration

	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:           "localhost:8080",
		MetricsPath:       "/metrics",
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		WatchPingPeriod:   54 * time.Second,
		ShutdownTimeout:   15 * time.Second,
	}
}

// Server is the HTTP front end.
type Server struct {
	config   Config
	router   *router.Router
	sessions *session.Manager
	upgrader websocket.Upgrader
	logger   *slog.Logger
	handler  http.Handler

	httpServer *http.Server
}

// New creates a server for the given route table and session manager.
func New(r *router.Router, sessions *session.Manager, config Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if config.WatchPingPeriod <= 0 {
		config.WatchPingPeriod = DefaultConfig().WatchPingPeriod
	}
	s := &Server{
		config:   config,
		router:   r,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     config.CheckOrigin,
		},
		logger: logger.With("component", "server"),
	}
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.Recoverer)
	mux.Use(requestLogger(s.logger))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	if s.config.MetricsPath != "" && s.config.Gatherer != nil {
		mux.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}

	mux.Route("/api", func(r chi.Router) {
		r.Get("/routes", s.handleRoutes)
		r.Get("/navigate", s.handleNavigate)
		r.Get("/navigate/*", s.handleNavigate)

		r.Route("/stores", func(r chi.Router) {
			r.Use(s.withSession)
			r.Get("/", s.handleListStores)
			r.Delete("/", s.handleClearStores)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(s.withStore)
				r.Get("/", s.handleGetStore)
				r.Patch("/", s.handlePatchStore)
				r.Delete("/", s.handleClearStore)
				r.Get("/watch", s.handleWatchStore)
			})
		})
	})

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: map[string]string{"message": "not found"}})
	})
	return mux
}

// Handler returns the HTTP handler, for mounting or for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	// Hijacked WebSocket connections outlive http.Server.Shutdown; their
	// request contexts derive from base and end with it.
	base, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	s.httpServer.RegisterOnShutdown(cancelBase)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
