// Package server provides the HTTP surface of liftkit: merged template
// pages, the published page-script resource path, a comet WebSocket
// endpoint, and Prometheus metrics.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/liftkit-dev/liftkit/pkg/js"
	"github.com/liftkit-dev/liftkit/pkg/page"
	"github.com/liftkit-dev/liftkit/pkg/validate"
)

// tracerName identifies merge spans emitted by the server.
const tracerName = "liftkit"

// SessionCookie carries the session id for stateful pages.
const SessionCookie = "liftkit_session"

// Config configures the server.
type Config struct {
	// Addr is the host:port listen address.
	Addr string

	// TemplatesDir is the directory page templates are read from.
	TemplatesDir string

	// Merge behavior flags, threaded into every render context.
	DevMode          bool
	StripComments    bool
	GCTracking       bool
	AutoIncludeAJAX  bool
	AutoIncludeComet bool

	// DeferredTimeout bounds the wait for deferred snippet results.
	DeferredTimeout time.Duration

	// JSInit configures the client runtime initialization command.
	JSInit *js.Settings

	// Store holds published page scripts. Defaults to an in-memory
	// store.
	Store page.ScriptStore

	// Registry receives the server's Prometheus metrics.
	// Defaults to prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// ShutdownTimeout bounds graceful shutdown. Defaults to 10s.
	ShutdownTimeout time.Duration

	Logger *slog.Logger
}

// Server serves merged pages and their supporting resources.
type Server struct {
	cfg     Config
	logger  *slog.Logger
	store   page.ScriptStore
	router  chi.Router
	metrics *metrics
	comet   *CometHub
	tracer  trace.Tracer
}

// New creates a server from the configuration.
func New(cfg Config) *Server {
	if cfg.Store == nil {
		cfg.Store = page.NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		cfg:     cfg,
		logger:  cfg.Logger,
		store:   cfg.Store,
		metrics: newMetrics(cfg.Registry),
		comet:   newCometHub(),
		tracer:  otel.Tracer(tracerName),
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/lift/page/{version}.js", s.handlePageScript)
	r.Get("/lift/comet", s.handleComet)
	r.Get("/*", s.handlePage)
	s.router = r

	return s
}

// Handler returns the server's HTTP handler, for embedding and tests.
func (s *Server) Handler() http.Handler { return s.router }

// Comet returns the hub that comet producers publish version updates to.
func (s *Server) Comet() *CometHub { return s.comet }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// renderOptions builds the page.Options for one request. A request with a
// session cookie renders statefully under that session id.
func (s *Server) renderOptions(r *http.Request) page.Options {
	opts := page.Options{
		DevMode:          s.cfg.DevMode,
		StripComments:    s.cfg.StripComments,
		GCTracking:       s.cfg.GCTracking,
		AutoIncludeAJAX:  s.cfg.AutoIncludeAJAX,
		AutoIncludeComet: s.cfg.AutoIncludeComet,
		DeferredTimeout:  s.cfg.DeferredTimeout,
		JSInit:           s.cfg.JSInit,
		Store:            s.store,
		Logger:           s.logger,
	}
	if s.cfg.DevMode {
		opts.Validators = validate.Defaults()
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		opts.SessionID = cookie.Value
		opts.Stateful = true
	}
	return opts
}
