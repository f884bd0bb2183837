package database

import (
	"context"

	"github.com/juanbolano/mini-trello/internal/models"
)

// BoardRepository defines board persistence operations
type BoardRepository interface {
	CreateBoard(ctx context.Context, title string) (*models.Board, error)
	GetAllBoards(ctx context.Context) ([]models.Board, error)
	GetBoardByID(ctx context.Context, id string) (*models.Board, error)
	DeleteBoard(ctx context.Context, id string) error
}

// ColumnRepository defines column persistence operations
type ColumnRepository interface {
	CreateColumn(ctx context.Context, boardID, title string, order int) (*models.Column, error)
	GetColumnsByBoard(ctx context.Context, boardID string) ([]models.Column, error)
	GetColumnByID(ctx context.Context, id string) (*models.Column, error)
	DeleteColumn(ctx context.Context, id string) error
}

// CardRepository defines card persistence operations
type CardRepository interface {
	CreateCard(ctx context.Context, columnID, title, content string) (*models.Card, error)
	GetCardsByColumn(ctx context.Context, columnID string) ([]models.Card, error)
	GetCardByID(ctx context.Context, id string) (*models.Card, error)
	UpdateCard(ctx context.Context, id, title, content string) (*models.Card, error)
	UpdateCardColumn(ctx context.Context, id, columnID string) (*models.Card, error)
	DeleteCard(ctx context.Context, id string) error
}

// DataStore defines the unified interface for all data operations.
// Consumers can depend on the smaller interfaces for clearer dependencies.
type DataStore interface {
	BoardRepository
	ColumnRepository
	CardRepository
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)
