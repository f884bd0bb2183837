package board

import (
	"context"
	"encoding/json"
)

// RemoteStore is the store the session reads from and writes to.
// Operation names and argument keys are those of the remote package.
type RemoteStore interface {
	Query(ctx context.Context, name string, args map[string]any) (json.RawMessage, error)
	Mutate(ctx context.Context, name string, args map[string]any) (json.RawMessage, error)
}
