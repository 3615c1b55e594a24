// Package httpapi exposes the evaluation service over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"agent-feasibility/internal/application/port/input"
	"agent-feasibility/internal/application/port/output"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Addr           string
	AllowedOrigins []string
	// AccessLogJSON switches request logs to JSON lines.
	AccessLogJSON   bool
	ShutdownTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":8787",
		AccessLogJSON:   true,
		ShutdownTimeout: 10 * time.Second,
	}
}

type Server struct {
	cfg     Config
	handler http.Handler
	logger  output.LoggerPort
}

func NewServer(cfg Config, svc input.EvaluationService, health HealthChecker, logger output.LoggerPort) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultConfig().ShutdownTimeout
	}
	h := NewHandlers(svc, health, logger)
	return &Server{
		cfg:     cfg,
		handler: NewRouter(cfg, h),
		logger:  logger,
	}
}

func NewRouter(cfg Config, h *Handlers) http.Handler {
	accessLog := httplog.NewLogger(ServiceName, httplog.Options{JSON: cfg.AccessLogJSON})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(accessLog))
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware(cfg.AllowedOrigins...))

	r.NotFound(h.HandleNotFound)
	r.MethodNotAllowed(h.HandleMethodNotAllowed)

	r.Get("/", h.HandleRoot)
	r.Get("/health", h.HandleHealth)

	r.Post("/api/evaluations", h.HandleSubmit)
	r.Get("/api/evaluations", h.HandleList)
	r.Get("/api/evaluations/{id}", h.HandleGet)
	return r
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("HTTP server listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpapi: listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Info("HTTP server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("httpapi: shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
