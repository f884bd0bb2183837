package card

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

// MaxTitleLength bounds card titles
const MaxTitleLength = 255

// Service defines all card-related business operations
type Service interface {
	// Read operations
	GetCardsByColumn(ctx context.Context, columnID string) ([]models.Card, error)
	GetCardByID(ctx context.Context, id string) (*models.Card, error)

	// Write operations
	CreateCard(ctx context.Context, req CreateCardRequest) (*models.Card, error)
	UpdateCard(ctx context.Context, req UpdateCardRequest) (*models.Card, error)
	MoveCard(ctx context.Context, id, columnID string) (*models.Card, error)
	DeleteCard(ctx context.Context, id string) error
}

// CreateCardRequest encapsulates data for creating a card
type CreateCardRequest struct {
	Title    string
	Content  string
	ColumnID string
}

// UpdateCardRequest encapsulates data for editing a card
type UpdateCardRequest struct {
	ID      string
	Title   string
	Content string
}

// repository is the slice of the data store the card service needs
type repository interface {
	database.ColumnRepository
	database.CardRepository
}

type service struct {
	repo repository
}

// NewService creates a new card service
func NewService(repo repository) Service {
	return &service{repo: repo}
}

// GetCardsByColumn retrieves a column's cards sorted by (created, id)
func (s *service) GetCardsByColumn(ctx context.Context, columnID string) ([]models.Card, error) {
	if strings.TrimSpace(columnID) == "" {
		return nil, ErrInvalidColumnID
	}
	return s.repo.GetCardsByColumn(ctx, columnID)
}

// GetCardByID retrieves a specific card
func (s *service) GetCardByID(ctx context.Context, id string) (*models.Card, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidCardID
	}
	card, err := s.repo.GetCardByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCardNotFound
	}
	return card, err
}

// CreateCard validates and creates a card in an existing column
func (s *service) CreateCard(ctx context.Context, req CreateCardRequest) (*models.Card, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := s.requireColumn(ctx, req.ColumnID); err != nil {
		return nil, err
	}

	card, err := s.repo.CreateCard(ctx, req.ColumnID, req.Title, req.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	slog.Debug("card created", "card_id", card.ID, "column_id", card.ColumnID)
	return card, nil
}

// UpdateCard rewrites a card's title and content
func (s *service) UpdateCard(ctx context.Context, req UpdateCardRequest) (*models.Card, error) {
	req.Title = strings.TrimSpace(req.Title)
	if strings.TrimSpace(req.ID) == "" {
		return nil, ErrInvalidCardID
	}
	if err := s.validateTitle(req.Title); err != nil {
		return nil, err
	}

	card, err := s.repo.UpdateCard(ctx, req.ID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to update card: %w", err)
	}
	return card, nil
}

// MoveCard reassigns a card to another column
func (s *service) MoveCard(ctx context.Context, id, columnID string) (*models.Card, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidCardID
	}
	if err := s.requireColumn(ctx, columnID); err != nil {
		return nil, err
	}

	card, err := s.repo.UpdateCardColumn(ctx, id, columnID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to move card: %w", err)
	}

	slog.Debug("card moved", "card_id", id, "column_id", columnID)
	return card, nil
}

// DeleteCard removes a card
func (s *service) DeleteCard(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidCardID
	}
	if err := s.repo.DeleteCard(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCardNotFound
		}
		return err
	}
	return nil
}

func (s *service) validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func (s *service) requireColumn(ctx context.Context, columnID string) error {
	if strings.TrimSpace(columnID) == "" {
		return ErrInvalidColumnID
	}
	if _, err := s.repo.GetColumnByID(ctx, columnID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrColumnNotFound
		}
		return err
	}
	return nil
}
