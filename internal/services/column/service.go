package column

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/juanbolano/mini-trello/internal/database"
	"github.com/juanbolano/mini-trello/internal/models"
)

// MaxTitleLength bounds column titles
const MaxTitleLength = 50

// Service defines all column-related business operations
type Service interface {
	// Read operations
	GetColumnsByBoard(ctx context.Context, boardID string) ([]models.Column, error)
	GetColumnByID(ctx context.Context, id string) (*models.Column, error)

	// Write operations
	CreateColumn(ctx context.Context, req CreateColumnRequest) (*models.Column, error)
	DeleteColumn(ctx context.Context, id string) error
}

// CreateColumnRequest encapsulates data for creating a column
type CreateColumnRequest struct {
	Title   string
	BoardID string
	Order   int
}

// repository is the slice of the data store the column service needs
type repository interface {
	database.BoardRepository
	database.ColumnRepository
}

type service struct {
	repo repository
}

// NewService creates a new column service
func NewService(repo repository) Service {
	return &service{repo: repo}
}

// GetColumnsByBoard retrieves all columns for a board, sorted by (order, id)
func (s *service) GetColumnsByBoard(ctx context.Context, boardID string) ([]models.Column, error) {
	if strings.TrimSpace(boardID) == "" {
		return nil, ErrInvalidBoardID
	}
	return s.repo.GetColumnsByBoard(ctx, boardID)
}

// GetColumnByID retrieves a specific column
func (s *service) GetColumnByID(ctx context.Context, id string) (*models.Column, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidColumnID
	}
	column, err := s.repo.GetColumnByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrColumnNotFound
	}
	return column, err
}

// CreateColumn validates and creates a column on an existing board
func (s *service) CreateColumn(ctx context.Context, req CreateColumnRequest) (*models.Column, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validateCreateColumn(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetBoardByID(ctx, req.BoardID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}

	column, err := s.repo.CreateColumn(ctx, req.BoardID, req.Title, req.Order)
	if err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}

	slog.Debug("column created", "column_id", column.ID, "board_id", column.BoardID, "order", column.Order)
	return column, nil
}

// DeleteColumn removes a column and its cards
func (s *service) DeleteColumn(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidColumnID
	}
	if err := s.repo.DeleteColumn(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrColumnNotFound
		}
		return err
	}
	return nil
}

func (s *service) validateCreateColumn(req CreateColumnRequest) error {
	if req.Title == "" {
		return ErrEmptyTitle
	}
	if len(req.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(req.BoardID) == "" {
		return ErrInvalidBoardID
	}
	return nil
}
