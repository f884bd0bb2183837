package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/juanbolano/mini-trello/internal/converters"
)

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// newID returns a fresh entity id (uuid4)
func newID() string {
	return uuid.NewString()
}

// now returns the creation timestamp for new rows, truncated to the stored precision
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// requireAffected turns a zero-row update or delete into sql.ErrNoRows
func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// scanCreated parses a stored created_at column
func scanCreated(raw string) (time.Time, error) {
	return converters.ParseCreated(raw)
}
