// Package server wires the HTTP surface of the exercise tracker: the chi
// router and its middleware, the users and exercises routes, health check,
// Prometheus metrics and the Swagger UI.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Registers the OpenAPI document served under /swagger.
	_ "github.com/user/exercise-tracker-go/docs"

	"github.com/user/exercise-tracker-go/apperror"
	"github.com/user/exercise-tracker-go/config"
	"github.com/user/exercise-tracker-go/exercises"
	"github.com/user/exercise-tracker-go/httpx"
	"github.com/user/exercise-tracker-go/store"
	"github.com/user/exercise-tracker-go/users"
)

const (
	healthCheckTimeout = 2 * time.Second
	shutdownTimeout    = 30 * time.Second
)

// Server owns the router and the store it serves.
type Server struct {
	cfg      *config.ServerConfig
	store    store.Store
	logger   *slog.Logger
	router   chi.Router
	registry *prometheus.Registry
	metrics  *metrics
}

// New builds a Server on top of s. Exercise service options (a fixed clock in
// tests) are passed through.
func New(cfg *config.ServerConfig, s store.Store, logger *slog.Logger, opts ...exercises.Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := &Server{
		cfg:      cfg,
		store:    s,
		logger:   logger,
		router:   chi.NewRouter(),
		registry: registry,
		metrics:  newMetrics(registry),
	}
	srv.routes(opts)
	return srv
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes(opts []exercises.Option) {
	r := s.router

	// chi requires every middleware before the first route.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(s.recoverer)
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	userHandlers := users.NewUserHandlers(users.NewUserService(s.store))
	exerciseHandlers := exercises.NewExerciseHandlers(exercises.NewExerciseService(s.store, opts...))

	r.Route("/api/users", func(r chi.Router) {
		userHandlers.RegisterRoutes(r)
		exerciseHandlers.RegisterRoutes(r)
	})

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}

// handleHealth godoc
// @Summary Health check
// @Description Reports whether the store is reachable.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.logger.WarnContext(ctx, "health check failed", "error", err)
		httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// instrument logs every request and records its metrics under the matched
// route pattern, so ids in the path do not explode label cardinality.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)
		s.metrics.record(r.Method, route, status, elapsed)

		s.logger.LogAttrs(r.Context(), slog.LevelInfo, "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", elapsed),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// recoverer turns a panicking handler into the standard 500 body.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			s.logger.ErrorContext(r.Context(), "panic recovered",
				"panic", fmt.Sprint(rvr),
				"request_id", middleware.GetReqID(r.Context()),
			)
			httpx.WriteError(w, r, apperror.NewInternalError("panic while handling request", fmt.Errorf("%v", rvr)))
		}()
		next.ServeHTTP(w, r)
	})
}

// Run serves on the configured port until ctx is cancelled, then shuts down
// gracefully and closes the store.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      s.cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown: %w", err))
	}
	if err := s.store.Close(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	if len(errs) == 0 {
		s.logger.Info("server stopped gracefully")
	}
	return errors.Join(errs...)
}
