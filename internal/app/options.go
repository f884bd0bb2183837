package app

import (
	"io"
	"log/slog"
	"time"

	"github.com/juanbolano/mini-trello/internal/config"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	config         *config.Config
	logger         *slog.Logger
	pendingTimeout time.Duration
	closers        []io.Closer
}

// WithConfig attaches the loaded configuration to the App
func WithConfig(cfg *config.Config) Option {
	return func(c *appConfig) {
		c.config = cfg
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(c *appConfig) {
		c.logger = logger
	}
}

// WithPendingTimeout bounds how long a move may stay Pending
func WithPendingTimeout(d time.Duration) Option {
	return func(c *appConfig) {
		c.pendingTimeout = d
	}
}

// withCloser registers a resource released by Close
func withCloser(closer io.Closer) Option {
	return func(c *appConfig) {
		c.closers = append(c.closers, closer)
	}
}
