package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/juanbolano/mini-trello/internal/board"
	"github.com/juanbolano/mini-trello/internal/config"
	"github.com/juanbolano/mini-trello/internal/database"
	"github.com/juanbolano/mini-trello/internal/remote"
	"github.com/juanbolano/mini-trello/internal/remote/local"
)

// App holds the store client and the board session built on it.
// This is the main application container that manages their lifecycles.
type App struct {
	Config  *config.Config
	Store   board.RemoteStore
	Session *board.Session

	closers []io.Closer
}

// New creates an App around an existing store. Used by tests and by Open.
func New(store board.RemoteStore, opts ...Option) *App {
	cfg := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	sessionOpts := []board.Option{board.WithLogger(cfg.logger)}
	if cfg.pendingTimeout > 0 {
		sessionOpts = append(sessionOpts, board.WithPendingTimeout(cfg.pendingTimeout))
	}

	return &App{
		Config:  cfg.config,
		Store:   store,
		Session: board.NewSession(store, sessionOpts...),
		closers: cfg.closers,
	}
}

// Open builds the store selected by cfg.Remote.Mode and wraps it in an App.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	store, closer, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithConfig(cfg),
		WithPendingTimeout(cfg.Sync.PendingTimeout),
	}
	if closer != nil {
		base = append(base, withCloser(closer))
	}
	return New(store, append(base, opts...)...), nil
}

func openStore(ctx context.Context, cfg *config.Config) (board.RemoteStore, io.Closer, error) {
	switch cfg.Remote.Mode {
	case config.ModeLocal:
		db, err := database.InitDB(ctx, cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return local.NewFromRepository(database.NewRepository(db)), db, nil

	case config.ModeSocket:
		client, err := remote.NewSocketClient(cfg.Remote.SocketPath, cfg.Remote.RequestTimeout)
		if err != nil {
			return nil, nil, err
		}
		if err := client.Connect(ctx); err != nil {
			return nil, nil, remote.ClassifyTransportError(err)
		}
		return client, client, nil

	case config.ModeHTTP:
		client, err := remote.NewHTTPClient(cfg.Remote.Endpoint, cfg.Remote.RequestTimeout)
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown remote mode %q", cfg.Remote.Mode)
}

// Close ends the session and releases the store.
func (a *App) Close() error {
	a.Session.Close()

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
