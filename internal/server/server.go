// Package server exposes the combination checker over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/domaincomb/domaincomb/internal/config"
	"github.com/domaincomb/domaincomb/internal/observability"
	"github.com/domaincomb/domaincomb/internal/server/handlers"
	servermw "github.com/domaincomb/domaincomb/internal/server/middleware"
)

// Server represents the HTTP server.
type Server struct {
	router  *chi.Mux
	server  *http.Server
	cfg     *config.Config
	version string
}

// New creates the HTTP server with its middleware stack and routes.
func New(cfg *config.Config, version string) *Server {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(servermw.RequestID)
	r.Use(servermw.RequestLogger)
	r.Use(chimw.Recoverer)

	s := &Server{
		router:  r,
		cfg:     cfg,
		version: version,
	}
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	health := &handlers.HealthHandler{Version: s.version}
	batch := &handlers.BatchHandler{Cfg: s.cfg}

	s.router.Get("/healthz", health.Handle)
	s.router.Route("/v0", func(r chi.Router) {
		r.Post("/batch", batch.Handle)
	})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	if logger := observability.ServerLogger; logger != nil {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if logger := observability.ServerLogger; logger != nil {
		logger.Info("Shutting down HTTP server")
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the underlying router for testing.
func (s *Server) Handler() http.Handler {
	return s.router
}
