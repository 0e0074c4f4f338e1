// Command blobd is a self-hostable blob service speaking the same four-verb
// contract as the public one: POST /blob/new plus GET/PUT/DELETE /blob/{id}
// over opaque text payloads. Point SNIPSHARE_BLOB_URL at it to keep snippets
// entirely on your own machine or network.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/snipshare/internal/config"
	"github.com/sakif/snipshare/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg := config.Load()

	// The sqlite file needs its parent directory to exist.
	dbDir := filepath.Dir(cfg.Blobd.DBPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(server.Config{
		Port:    cfg.Blobd.Port,
		DBPath:  cfg.Blobd.DBPath,
		BaseURL: cfg.Blobd.BaseURL,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
