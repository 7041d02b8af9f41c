// Package server exposes generated graphs over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/matsen/docgraph/internal/config"
	"github.com/matsen/docgraph/internal/lattice"
	"github.com/matsen/docgraph/internal/metrics"
)

// shutdownTimeout bounds how long in-flight requests may run after Run's
// context is cancelled.
const shutdownTimeout = 10 * time.Second

// Server serves graphs generated from request parameters, memoized in a
// shared cache.
type Server struct {
	cfg     *config.Config
	cache   *lattice.Cache
	logger  *zap.Logger
	metrics *metrics.Collector
	limiter *rate.Limiter // nil when throttling is disabled
}

// New creates a server. Values in cfg fill in parameters a request omits.
func New(cfg *config.Config, logger *zap.Logger, collector *metrics.Collector) *Server {
	s := &Server{
		cfg:     cfg,
		cache:   lattice.NewCache(cfg.Server.CacheSize),
		logger:  logger,
		metrics: collector,
	}
	if cfg.Server.RateLimit > 0 {
		burst := cfg.Server.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), burst)
	}
	return s
}

// Handler builds the router with all middleware attached.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))
	router.Use(s.instrument)

	if len(s.cfg.Server.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.Server.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.Get("/health", s.handleHealth)
	router.Handle("/metrics", s.metrics.Handler())

	router.Group(func(r chi.Router) {
		r.Use(s.throttle)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/graph", s.handleGraph)
			r.Get("/graph/stats", s.handleStats)
			r.Get("/graph/nodes/{index}/neighbors", s.handleNeighbors)
			r.Get("/lattice", s.handleLattice)
		})
		r.Get("/viz", s.handleViz)
	})

	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// graph returns the graph for p from the cache and records metrics.
func (s *Server) graph(p graphParams) (*lattice.Graph, error) {
	start := time.Now()
	g, cached, err := s.cache.Get(p.lattice())
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	s.metrics.ObserveGraph(len(g.Nodes), cached, elapsed)
	s.logger.Debug("graph ready",
		zap.Int("cells", g.Config.Cells),
		zap.Int("docs", g.Config.Docs),
		zap.Int64("seed", g.Config.Seed),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
		zap.Bool("cached", cached),
		zap.Duration("duration", elapsed),
	)
	return g, nil
}
