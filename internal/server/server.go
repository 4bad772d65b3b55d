package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	v1 "github.com/gosuda/estatehub/internal/api/v1"
	"github.com/gosuda/estatehub/internal/api/ws"
	"github.com/gosuda/estatehub/internal/config"
	"github.com/gosuda/estatehub/internal/metrics"
	"github.com/gosuda/estatehub/internal/server/middleware"
)

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server with all routes wired. hub may be nil, in which case
// no WebSocket routes are mounted. ctx bounds the rate limiter cleanup
// goroutines.
func New(ctx context.Context, cfg *config.Config, d v1.Dispatcher, m *metrics.Metrics, hub *ws.Hub) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(requestLogger)
	router.Use(chimw.Recoverer)
	router.Use(m.Middleware)
	router.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}).Handler)

	s := &Server{
		router: router,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	perClient := middleware.RateLimit(ctx, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, middleware.ByRemoteAddr)
	perEstate := middleware.RateLimit(ctx, cfg.RateLimit.EstateRequestsPerSecond, cfg.RateLimit.EstateBurst, middleware.ByEstate)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(perClient)
		r.Use(perEstate)

		apiConfig := huma.DefaultConfig("Estate Hub API", "1.0.0")
		apiConfig.Servers = []*huma.Server{
			{URL: "/api/v1"},
		}
		api := humachi.New(r, apiConfig)
		registerAPIRoutes(api, d)
	})

	// WebSocket routes, only when a broker is configured.
	if hub != nil {
		router.Route("/ws", func(r chi.Router) {
			r.Use(perClient)
			registerWSRoutes(r, hub)
		})
		log.Info().Msg("websocket event stream enabled")
	}

	router.Handle("/metrics", m.Handler())

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return s
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
