// HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmaidana/toolrelay/internal/api"
	"github.com/dmaidana/toolrelay/internal/domain/tool"
)

// Config holds HTTP server configuration.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns default HTTP server configuration. The write timeout
// is generous because a tool invocation blocks the response on a provider
// subprocess round trip.
func DefaultConfig() Config {
	return Config{
		Addr:         "0.0.0.0:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Server wraps the HTTP server together with the resources it must release
// on shutdown: the provider connections held by the registry and, when
// journaling is on, the database handle.
type Server struct {
	config Config
	store  *tool.Store
	db     *sql.DB // nil when no journal is configured
	http   *http.Server
	logger *slog.Logger
}

// NewServer builds the HTTP server around an already-wired router.
// db may be nil.
func NewServer(deps api.Deps, db *sql.DB, config Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	httpServer := &http.Server{
		Addr:         config.Addr,
		Handler:      api.NewRouter(deps),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config: config,
		store:  deps.Store,
		db:     db,
		http:   httpServer,
		logger: logger,
	}
}

// Start runs the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("http server listening", "addr", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests, tears down provider connections, and
// closes the database.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	// Swapping in an empty registry detaches the provider connections so they
	// can be closed exactly once here.
	if s.store != nil {
		if err := s.store.Replace(nil).Close(); err != nil {
			s.logger.Warn("provider close error", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("database close error: %w", err)
		}
	}

	s.logger.Info("shutdown complete")
	return nil
}
