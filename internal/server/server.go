// Package server exposes a live layout over HTTP.
//
// A background loop steps the engine at the configured rate while handlers
// read frames, pin and move nodes, and hit-test screen points. Every access
// to the engine goes through one mutex, so a request never observes a
// half-finished step.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
	"github.com/matzehuels/forcegraph/pkg/render"
	"github.com/matzehuels/forcegraph/pkg/sim"
)

// Options configures a [Server].
type Options struct {
	Serve  config.ServeConfig
	Render render.Options

	// Paused disables the background step loop. Steps then only happen
	// through POST /api/v1/step.
	Paused bool

	// Metrics, if set, is mounted at /metrics.
	Metrics http.Handler

	Logger *log.Logger
}

// Server owns an engine and the HTTP surface around it.
type Server struct {
	opts   Options
	engine *force.Engine
	mu     sync.Mutex
	steps  atomic.Int64
	sim    *sim.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server over e. The server takes ownership of e: callers
// must not touch it afterwards.
func New(e *force.Engine, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Serve.MaxSteps <= 0 {
		opts.Serve.MaxSteps = config.Default().Serve.MaxSteps
	}
	s := &Server{
		opts:   opts,
		engine: e,
		sim:    sim.NewRunner(opts.Logger),
		logger: opts.Logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Steps returns the number of steps taken since the server was created.
func (s *Server) Steps() int64 { return s.steps.Load() }

// ListenAndServe listens on the configured address and calls [Server.Serve].
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.opts.Serve.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve runs the HTTP server and the step loop until ctx is done or either
// of them fails, then shuts the HTTP server down within the configured
// timeout. A cancelled ctx is a clean exit.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if !s.opts.Paused {
		g.Go(func() error {
			return s.loop(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		timeout := s.opts.Serve.ShutdownTimeout.Duration()
		if timeout <= 0 {
			timeout = config.Default().Serve.ShutdownTimeout.Duration()
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		s.logger.Info("shutting down", "timeout", timeout)
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	s.logger.Info("server stopped", "steps", s.Steps())
	return err
}

// loop steps the engine until ctx is done.
func (s *Server) loop(ctx context.Context) error {
	_, err := s.sim.Run(ctx, s.engine, sim.Options{
		Continuous: true,
		Rate:       s.opts.Serve.Rate,
		Locker:     &s.mu,
		Progress:   func(int, int) { s.steps.Add(1) },
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/frame", s.handleFrame)
		r.Get("/frame.svg", s.handleFrameSVG)
		r.Get("/frame/{format}", s.handleFrameFormat)
		r.Post("/step", s.handleStep)
		r.Post("/hit", s.handleHit)
		r.Route("/nodes/{id}", func(r chi.Router) {
			r.Get("/", s.handleNode)
			r.Post("/pin", s.handlePin)
			r.Delete("/pin", s.handleUnpin)
			r.Put("/position", s.handlePosition)
		})
	})
	return r
}
