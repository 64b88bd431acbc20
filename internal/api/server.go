package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ignite/fieldops-monitor/internal/config"
	"github.com/ignite/fieldops-monitor/internal/engine"
)

// Server represents the API server
type Server struct {
	config   config.ServerConfig
	handler  http.Handler
	handlers *Handlers
	server   *http.Server
	router   *chi.Mux
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, eng *engine.Engine) *Server {
	handlers := NewHandlers(eng)
	router := SetupRoutes(handlers, cfg.CORS.AllowedOrigins)

	return &Server{
		config:   cfg.Server,
		handler:  router,
		handlers: handlers,
		router:   router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe(addr string) error {
	timeout := s.config.Timeout()
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      timeout,
		IdleTimeout:       120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing
func (s *Server) Handler() http.Handler {
	return s.handler
}
