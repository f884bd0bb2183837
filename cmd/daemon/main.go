package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/juanbolano/mini-trello/internal/config"
	"github.com/juanbolano/mini-trello/internal/daemon"
	"github.com/juanbolano/mini-trello/internal/database"
	"github.com/juanbolano/mini-trello/internal/logging"
	"github.com/juanbolano/mini-trello/internal/remote/local"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := logging.Console(cfg.LogLevel); err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}

	// Ensure the data directory exists with secure permissions
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}

	db, err := database.InitDB(ctx, cfg.DataDir)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	store := local.NewFromRepository(database.NewRepository(db))

	// Create and start the daemon server
	server, err := daemon.NewServer(cfg.Remote.SocketPath, store)
	if err != nil {
		slog.Error("failed to create daemon", "error", err)
		os.Exit(1)
	}

	slog.Info("minitrello daemon starting", "socket_path", cfg.Remote.SocketPath, "pid", os.Getpid())

	// Start the daemon (blocks until shutdown)
	if err := server.Start(ctx); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}

	slog.Info("minitrello daemon shutting down gracefully")
}
