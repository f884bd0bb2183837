package board

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

// MaxTitleLength bounds board titles
const MaxTitleLength = 100

// Service defines all board-related business operations
type Service interface {
	ListBoards(ctx context.Context) ([]models.Board, error)
	GetBoard(ctx context.Context, id string) (*models.Board, error)
	CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error)
}

// CreateBoardRequest encapsulates data for creating a board
type CreateBoardRequest struct {
	Title string
}

type service struct {
	repo database.BoardRepository
}

// NewService creates a new board service
func NewService(repo database.BoardRepository) Service {
	return &service{repo: repo}
}

// ListBoards returns every board
func (s *service) ListBoards(ctx context.Context) ([]models.Board, error) {
	return s.repo.GetAllBoards(ctx)
}

// GetBoard retrieves a specific board
func (s *service) GetBoard(ctx context.Context, id string) (*models.Board, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidBoardID
	}
	board, err := s.repo.GetBoardByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBoardNotFound
	}
	return board, err
}

// CreateBoard validates and creates a board
func (s *service) CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validateCreateBoard(req); err != nil {
		return nil, err
	}

	board, err := s.repo.CreateBoard(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	slog.Debug("board created", "board_id", board.ID)
	return board, nil
}

func (s *service) validateCreateBoard(req CreateBoardRequest) error {
	if req.Title == "" {
		return ErrEmptyTitle
	}
	if len(req.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}
