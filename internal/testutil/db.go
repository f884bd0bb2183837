package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/juanbolano/mini-trello/internal/database"
)

// SetupTestDB creates an in-memory database with full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateTestBoard creates a board and returns its ID
func CreateTestBoard(t *testing.T, db *sql.DB, title string) string {
	t.Helper()
	b, err := database.NewRepository(db).CreateBoard(context.Background(), title)
	if err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}
	return b.ID
}

// CreateTestColumn creates a column at order and returns its ID
func CreateTestColumn(t *testing.T, db *sql.DB, boardID, title string, order int) string {
	t.Helper()
	col, err := database.NewRepository(db).CreateColumn(context.Background(), boardID, title, order)
	if err != nil {
		t.Fatalf("Failed to create test column: %v", err)
	}
	return col.ID
}

// CreateTestCard creates a card and returns its ID
func CreateTestCard(t *testing.T, db *sql.DB, columnID, title, content string) string {
	t.Helper()
	card, err := database.NewRepository(db).CreateCard(context.Background(), columnID, title, content)
	if err != nil {
		t.Fatalf("Failed to create test card: %v", err)
	}
	return card.ID
}

// TestBoard is a seeded board with Todo, Doing and Done columns
type TestBoard struct {
	ID    string
	Todo  string
	Doing string
	Done  string
}

// CreateTestBoardWithColumns seeds a board with three ordered columns
func CreateTestBoardWithColumns(t *testing.T, db *sql.DB, title string) TestBoard {
	t.Helper()
	id := CreateTestBoard(t, db, title)
	return TestBoard{
		ID:    id,
		Todo:  CreateTestColumn(t, db, id, "Todo", 0),
		Doing: CreateTestColumn(t, db, id, "Doing", 1),
		Done:  CreateTestColumn(t, db, id, "Done", 2),
	}
}
