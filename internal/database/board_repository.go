package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/juanbolano/mini-trello/internal/converters"
	"github.com/juanbolano/mini-trello/internal/models"
)

// BoardRepo handles all board-related database operations.
type BoardRepo struct {
	db *sql.DB
}

// Create inserts a new board
func (r *BoardRepo) Create(ctx context.Context, title string) (*models.Board, error) {
	board := &models.Board{ID: newID(), Title: title}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO boards (id, title, created_at) VALUES (?, ?, ?)`,
		board.ID, board.Title, converters.FormatCreated(now()),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting board: %w", err)
	}
	return board, nil
}

// GetAll returns every board in creation order
func (r *BoardRepo) GetAll(ctx context.Context) ([]models.Board, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title FROM boards ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying boards: %w", err)
	}
	defer rows.Close()

	boards := make([]models.Board, 0)
	for rows.Next() {
		var b models.Board
		if err := rows.Scan(&b.ID, &b.Title); err != nil {
			return nil, fmt.Errorf("scanning board row: %w", err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating board rows: %w", err)
	}
	return boards, nil
}

// GetByID returns a single board. Missing boards yield sql.ErrNoRows.
func (r *BoardRepo) GetByID(ctx context.Context, id string) (*models.Board, error) {
	var b models.Board
	err := r.db.QueryRowContext(ctx, `SELECT id, title FROM boards WHERE id = ?`, id).Scan(&b.ID, &b.Title)
	if err != nil {
		return nil, fmt.Errorf("getting board %s: %w", id, err)
	}
	return &b, nil
}

// Delete removes a board; its columns and cards cascade
func (r *BoardRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting board %s: %w", id, err)
	}
	return requireAffected(result)
}
