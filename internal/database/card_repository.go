package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/juanbolano/mini-trello/internal/converters"
	"github.com/juanbolano/mini-trello/internal/models"
)

// CardRepo handles all card-related database operations.
type CardRepo struct {
	db *sql.DB
}

const cardColumns = `id, column_id, title, content, created_at`

// Create inserts a new card into a column
func (r *CardRepo) Create(ctx context.Context, columnID, title, content string) (*models.Card, error) {
	card := &models.Card{
		ID:        newID(),
		Title:     title,
		Content:   content,
		ColumnID:  columnID,
		CreatedAt: now(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (id, column_id, title, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		card.ID, card.ColumnID, card.Title, card.Content, converters.FormatCreated(card.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting card: %w", err)
	}
	return card, nil
}

// GetByColumn returns a column's cards sorted by (created, id)
func (r *CardRepo) GetByColumn(ctx context.Context, columnID string) ([]models.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE column_id = ? ORDER BY created_at, id`,
		columnID)
	if err != nil {
		return nil, fmt.Errorf("querying cards for column: %w", err)
	}
	defer rows.Close()

	cards := make([]models.Card, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card rows: %w", err)
	}
	return cards, nil
}

// GetByID returns a single card. Missing cards yield sql.ErrNoRows.
func (r *CardRepo) GetByID(ctx context.Context, id string) (*models.Card, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	card, err := scanCard(row)
	if err != nil {
		return nil, fmt.Errorf("getting card %s: %w", id, err)
	}
	return &card, nil
}

// Update rewrites a card's title and content
func (r *CardRepo) Update(ctx context.Context, id, title, content string) (*models.Card, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE cards SET title = ?, content = ? WHERE id = ?`, title, content, id)
	if err != nil {
		return nil, fmt.Errorf("updating card %s: %w", id, err)
	}
	if err := requireAffected(result); err != nil {
		return nil, fmt.Errorf("updating card %s: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

// UpdateColumn moves a card to another column
func (r *CardRepo) UpdateColumn(ctx context.Context, id, columnID string) (*models.Card, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE cards SET column_id = ? WHERE id = ?`, columnID, id)
	if err != nil {
		return nil, fmt.Errorf("moving card %s: %w", id, err)
	}
	if err := requireAffected(result); err != nil {
		return nil, fmt.Errorf("moving card %s: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a card
func (r *CardRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting card %s: %w", id, err)
	}
	return requireAffected(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (models.Card, error) {
	var (
		card    models.Card
		created string
	)
	if err := row.Scan(&card.ID, &card.ColumnID, &card.Title, &card.Content, &created); err != nil {
		return models.Card{}, err
	}
	createdAt, err := scanCreated(created)
	if err != nil {
		return models.Card{}, err
	}
	card.CreatedAt = createdAt
	return card, nil
}
