// Package server wires blobd together: database, handlers, router, and the
// server lifecycle. main.go stays minimal; everything testable lives here.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/snipshare/internal/handler"
	"github.com/sakif/snipshare/internal/middleware"
	sqliteRepo "github.com/sakif/snipshare/internal/repository/sqlite"
)

// Config holds blobd configuration.
type Config struct {
	Port    int
	DBPath  string
	BaseURL string // externally visible address, embedded in create responses
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL is flushed and the file lock
// released.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the dependency chain: sqlite.DB → BlobHandler → routes.
// The handler receives the repository interface, not the concrete DB.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()
	return s, nil
}

// Router exposes the configured routes; tests mount it on httptest.Server.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close releases the database. Callers that never reach Start (tests) use
// this directly; Start defers it itself.
func (s *Server) Close() error {
	return s.db.Close()
}

func (s *Server) setupRoutes() {
	// Middleware order matters: request id and real ip first so the logger
	// sees them, recoverer before anything that can panic.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	blobHandler := handler.NewBlobHandler(s.db, s.config.BaseURL, s.logger)

	s.router.Post("/blob/new", blobHandler.HandleCreate)
	s.router.Get("/blob/{id}", blobHandler.HandleGet)
	s.router.Put("/blob/{id}", blobHandler.HandleUpdate)
	s.router.Delete("/blob/{id}", blobHandler.HandleDelete)
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully:
// stop accepting connections, wait up to 30s for in-flight requests, close
// the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("blobd starting",
			slog.Int("port", s.config.Port),
			slog.String("baseURL", s.config.BaseURL),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			// Force close if graceful shutdown timed out
			srv.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	}
}
