// Package server provides the HTTP API for Platoo.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/worldjourney/platoo/internal/config"
	"github.com/worldjourney/platoo/internal/correct"
	"github.com/worldjourney/platoo/internal/gazetteer"
	"github.com/worldjourney/platoo/internal/rank"
	"github.com/worldjourney/platoo/internal/storage"
	"github.com/worldjourney/platoo/internal/suggest"
)

// Server is the HTTP server for the Platoo API.
type Server struct {
	provider  *gazetteer.Provider
	pipeline  *correct.Pipeline
	ranker    *rank.Ranker
	suggester *suggest.Service
	store     *storage.PlaceStore
	config    *config.ServerConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies. store may be nil
// when place persistence is disabled.
func NewServer(
	provider *gazetteer.Provider,
	pipeline *correct.Pipeline,
	ranker *rank.Ranker,
	suggester *suggest.Service,
	store *storage.PlaceStore,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		provider:  provider,
		pipeline:  pipeline,
		ranker:    ranker,
		suggester: suggester,
		store:     store,
		config:    cfg,
		logger:    logger,
	}
}

// Router builds the API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/correct", s.handleCorrect)
	r.Post("/api/v1/resolve", s.handleResolve)
	r.Get("/api/v1/suggest", s.handleSuggest)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
