package cli

import (
	"context"
	"fmt"

	"github.com/juanbolano/mini-trello/internal/app"
	"github.com/juanbolano/mini-trello/internal/cli/styles"
	"github.com/juanbolano/mini-trello/internal/config"
)

type contextKey struct{}

// WithApp returns a context carrying an existing App. Commands run with it
// use that App instead of building one from the config file.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// CLI represents the CLI application context
type CLI struct {
	App   *app.App
	owned bool
}

// NewCLI loads the configuration and connects to the configured store
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	styles.Init(cfg.ColorScheme)

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &CLI{App: application, owned: true}, nil
}

// GetCLIFromContext returns the CLI for a command, reusing an App injected
// with WithApp when present.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx != nil {
		if a, ok := ctx.Value(contextKey{}).(*app.App); ok && a != nil {
			return &CLI{App: a}, nil
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return NewCLI(ctx)
}

// Close releases the App if this CLI created it
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
