// Package server provides the planner's HTTP server
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/net/http2"

	"github.com/platewise/v1/internal/infrastructure/config"
	"github.com/platewise/v1/internal/infrastructure/http/handlers"
	"github.com/platewise/v1/internal/infrastructure/http/middleware"
	"github.com/platewise/v1/internal/infrastructure/monitoring"
	"github.com/platewise/v1/pkg/healthcheck"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	plannerHandlers *handlers.PlannerHandlers,
	metrics *monitoring.Metrics,
	health *healthcheck.HealthCheck,
) *Server {
	s := &Server{
		config: cfg,
		logger: logger.Named("server"),
	}
	s.router = s.setupRouter(plannerHandlers, metrics, health)

	s.server = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}
	// The solver path can legitimately run up to its time budget; give the
	// write timeout headroom over it.
	if budget := cfg.Planner.SolverTimeLimit + 15*time.Second; s.server.WriteTimeout < budget {
		s.server.WriteTimeout = budget
	}

	if err := http2.ConfigureServer(s.server, &http2.Server{}); err != nil {
		s.logger.Warn("http2 configuration failed", zap.Error(err))
	}

	return s
}

func (s *Server) setupRouter(plannerHandlers *handlers.PlannerHandlers, metrics *monitoring.Metrics, health *healthcheck.HealthCheck) *chi.Mux {
	mw := middleware.New(s.config, s.logger)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.Recoverer)
	r.Use(mw.Logger)

	r.Get(s.config.Monitoring.HealthCheckPath, health.Handler())
	if s.config.Monitoring.EnableMetrics {
		r.Handle(s.config.Monitoring.MetricsPath, promhttp.HandlerFor(
			metrics.Registry(),
			promhttp.HandlerOpts{},
		))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit)
		r.Route("/menus", func(r chi.Router) {
			r.Post("/", plannerHandlers.GenerateMenu)
			r.Post("/optimize", plannerHandlers.OptimizeMenu)
			r.Post("/compare", plannerHandlers.Compare)
			r.Route("/{menuID}", func(r chi.Router) {
				r.Get("/", plannerHandlers.GetMenu)
				r.Get("/shopping-list", plannerHandlers.ShoppingList)
				r.Route("/slots/{slot}", func(r chi.Router) {
					r.Get("/", plannerHandlers.SlotDetails)
					r.Post("/substitute", plannerHandlers.SubstituteSlot)
				})
			})
		})
	})

	return r
}

// Start begins listening; it blocks until the server stops
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
