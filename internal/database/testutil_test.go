package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/juanbolano/mini-trello/internal/models"
)

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// seedBoard creates a board with the given column titles (order = index)
func seedBoard(t *testing.T, repo *Repository, title string, columns ...string) (*models.Board, []string) {
	t.Helper()
	ctx := context.Background()

	board, err := repo.CreateBoard(ctx, title)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	ids := make([]string, 0, len(columns))
	for i, name := range columns {
		col, err := repo.CreateColumn(ctx, board.ID, name, i)
		if err != nil {
			t.Fatalf("Failed to create column %s: %v", name, err)
		}
		ids = append(ids, col.ID)
	}
	return board, ids
}
