package database

import (
	"context"
	"database/sql"

	"github.com/juanbolano/mini-trello/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*BoardRepo
	*ColumnRepo
	*CardRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		BoardRepo:  &BoardRepo{db: db},
		ColumnRepo: &ColumnRepo{db: db},
		CardRepo:   &CardRepo{db: db},
	}
}

// Wrapper methods for BoardRepo
func (r *Repository) CreateBoard(ctx context.Context, title string) (*models.Board, error) {
	return r.BoardRepo.Create(ctx, title)
}

func (r *Repository) GetAllBoards(ctx context.Context) ([]models.Board, error) {
	return r.BoardRepo.GetAll(ctx)
}

func (r *Repository) GetBoardByID(ctx context.Context, id string) (*models.Board, error) {
	return r.BoardRepo.GetByID(ctx, id)
}

func (r *Repository) DeleteBoard(ctx context.Context, id string) error {
	return r.BoardRepo.Delete(ctx, id)
}

// Wrapper methods for ColumnRepo
func (r *Repository) CreateColumn(ctx context.Context, boardID, title string, order int) (*models.Column, error) {
	return r.ColumnRepo.Create(ctx, boardID, title, order)
}

func (r *Repository) GetColumnsByBoard(ctx context.Context, boardID string) ([]models.Column, error) {
	return r.ColumnRepo.GetByBoard(ctx, boardID)
}

func (r *Repository) GetColumnByID(ctx context.Context, id string) (*models.Column, error) {
	return r.ColumnRepo.GetByID(ctx, id)
}

func (r *Repository) DeleteColumn(ctx context.Context, id string) error {
	return r.ColumnRepo.Delete(ctx, id)
}

// Wrapper methods for CardRepo
func (r *Repository) CreateCard(ctx context.Context, columnID, title, content string) (*models.Card, error) {
	return r.CardRepo.Create(ctx, columnID, title, content)
}

func (r *Repository) GetCardsByColumn(ctx context.Context, columnID string) ([]models.Card, error) {
	return r.CardRepo.GetByColumn(ctx, columnID)
}

func (r *Repository) GetCardByID(ctx context.Context, id string) (*models.Card, error) {
	return r.CardRepo.GetByID(ctx, id)
}

func (r *Repository) UpdateCard(ctx context.Context, id, title, content string) (*models.Card, error) {
	return r.CardRepo.Update(ctx, id, title, content)
}

func (r *Repository) UpdateCardColumn(ctx context.Context, id, columnID string) (*models.Card, error) {
	return r.CardRepo.UpdateColumn(ctx, id, columnID)
}

func (r *Repository) DeleteCard(ctx context.Context, id string) error {
	return r.CardRepo.Delete(ctx, id)
}
