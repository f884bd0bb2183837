package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/juanbolano/mini-trello/internal/models"
)

// ColumnRepo handles all column-related database operations.
type ColumnRepo struct {
	db *sql.DB
}

// Create inserts a new column for a board at the given order.
// Order values are stored as given; gaps and duplicates are allowed.
func (r *ColumnRepo) Create(ctx context.Context, boardID, title string, order int) (*models.Column, error) {
	column := &models.Column{
		ID:      newID(),
		Title:   title,
		BoardID: boardID,
		Order:   order,
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO columns (id, board_id, title, position) VALUES (?, ?, ?, ?)`,
		column.ID, column.BoardID, column.Title, column.Order,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting column: %w", err)
	}
	return column, nil
}

// GetByBoard returns a board's columns sorted by (order, id)
func (r *ColumnRepo) GetByBoard(ctx context.Context, boardID string) ([]models.Column, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, board_id, title, position FROM columns WHERE board_id = ? ORDER BY position, id`,
		boardID)
	if err != nil {
		return nil, fmt.Errorf("querying columns for board: %w", err)
	}
	defer rows.Close()

	columns := make([]models.Column, 0)
	for rows.Next() {
		var c models.Column
		if err := rows.Scan(&c.ID, &c.BoardID, &c.Title, &c.Order); err != nil {
			return nil, fmt.Errorf("scanning column row: %w", err)
		}
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column rows: %w", err)
	}
	return columns, nil
}

// GetByID returns a single column. Missing columns yield sql.ErrNoRows.
func (r *ColumnRepo) GetByID(ctx context.Context, id string) (*models.Column, error) {
	var c models.Column
	err := r.db.QueryRowContext(ctx,
		`SELECT id, board_id, title, position FROM columns WHERE id = ?`, id,
	).Scan(&c.ID, &c.BoardID, &c.Title, &c.Order)
	if err != nil {
		return nil, fmt.Errorf("getting column %s: %w", id, err)
	}
	return &c, nil
}

// Delete removes a column and, by cascade, its cards
func (r *ColumnRepo) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		// explicit delete keeps cards consistent even when foreign keys are off
		if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE column_id = ?`, id); err != nil {
			return fmt.Errorf("deleting cards of column %s: %w", id, err)
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM columns WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("deleting column %s: %w", id, err)
		}
		return requireAffected(result)
	})
}
