// Package launcher wires configuration, logging and the store into the TUI
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"

	"github.com/juanbolano/mini-trello/internal/app"
	"github.com/juanbolano/mini-trello/internal/config"
	"github.com/juanbolano/mini-trello/internal/logging"
	"github.com/juanbolano/mini-trello/internal/tui"
)

// Launch starts the TUI application
func Launch() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logging to file before anything else touches the store
	logCloser, err := logging.Init(cfg.DataDir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() {
		_ = logCloser.Close()
	}()

	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	application, err := app.Open(ctx, cfg, app.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Remote.Mode, err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("error closing application", "error", err)
		}
	}()

	slog.Info("starting tui", "mode", cfg.Remote.Mode)

	model := tui.InitialModel(ctx, application.Session, cfg)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
