// Package server hosts the cennik HTTP API: a small republishing surface over
// the extraction store, plus an endpoint to trigger extractions.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mkravec/cennik/internal/api"
	"github.com/mkravec/cennik/internal/config"
	"github.com/mkravec/cennik/internal/home"
	"github.com/mkravec/cennik/internal/server/endpoints"
	"github.com/mkravec/cennik/internal/store"
	"github.com/mkravec/cennik/internal/svcctx"
)

// Server is the cennik HTTP server. It owns the extraction store's lifecycle:
// the store opens on start and closes on shutdown.
type Server struct {
	httpServer *http.Server
	store      *store.Store
	configMgr  *config.Manager
	logger     *slog.Logger
	home       *home.Dir

	services         *svcctx.Services
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port string
	// DatabasePath is the SQLite database file backing the store.
	DatabasePath string
	// ConfigManager provides configuration with hot-reload support.
	ConfigManager *config.Manager
	// Home is the cennik home directory.
	Home *home.Dir
	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	s := &Server{
		store:     st,
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
		home:      cfg.Home,
	}

	s.services = &svcctx.Services{
		Store:     st,
		ConfigMgr: cfg.ConfigManager,
		Logger:    cfg.Logger,
		Home:      cfg.Home,
	}

	mux := http.NewServeMux()
	s.endpointRegistry = endpoints.NewRegistry()
	s.endpointRegistry.RegisterRoutes(mux, s.withServices)

	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// withServices attaches the core services to every request's context.
func (s *Server) withServices(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next(w, r.WithContext(svcctx.WithServices(r.Context(), s.services)))
	}
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if s.configMgr != nil {
		s.configMgr.WatchConfig()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.closeStore()
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.closeStore()
		return fmt.Errorf("shutdown failed: %w", err)
	}
	s.closeStore()

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	return nil
}

func (s *Server) closeStore() {
	if err := s.store.Close(); err != nil {
		s.logger.Warn("failed to close store", "error", err)
	}
}
