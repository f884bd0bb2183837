// Package remote carries board operations to a store: in-process, over a unix
// socket to the daemon, or over HTTP to a GraphQL-style endpoint.
package remote

import (
	"context"
	"encoding/json"
)

// Query operation names
const (
	OpBoards  = "boards"
	OpColumns = "columns"
	OpCards   = "cards"
)

// Mutation operation names
const (
	OpAddBoard         = "addBoard"
	OpAddColumn        = "addColumn"
	OpAddCard          = "addCard"
	OpEditCard         = "editCard"
	OpRemoveCard       = "removeCard"
	OpRemoveColumn     = "removeColumn"
	OpUpdateCardStatus = "updateCardStatus"
)

// Store executes named queries and mutations and returns their JSON result.
type Store interface {
	Query(ctx context.Context, name string, args map[string]any) (json.RawMessage, error)
	Mutate(ctx context.Context, name string, args map[string]any) (json.RawMessage, error)
}

// IsQuery reports whether name is a known read operation
func IsQuery(name string) bool {
	switch name {
	case OpBoards, OpColumns, OpCards:
		return true
	}
	return false
}

// IsMutation reports whether name is a known write operation
func IsMutation(name string) bool {
	switch name {
	case OpAddBoard, OpAddColumn, OpAddCard, OpEditCard,
		OpRemoveCard, OpRemoveColumn, OpUpdateCardStatus:
		return true
	}
	return false
}
