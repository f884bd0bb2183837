package column

import (
	"context"
	"errors"
	"testing"

	"github.com/juanbolano/mini-trello/internal/database"
)

func setupService(t *testing.T) (Service, *database.Repository) {
	t.Helper()
	db, err := database.OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := database.NewRepository(db)
	return NewService(repo), repo
}

func TestCreateColumn(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	board, err := repo.CreateBoard(ctx, "Board")
	if err != nil {
		t.Fatalf("CreateBoard failed: %v", err)
	}

	col, err := svc.CreateColumn(ctx, CreateColumnRequest{Title: "Doing", BoardID: board.ID, Order: 7})
	if err != nil {
		t.Fatalf("CreateColumn failed: %v", err)
	}
	if col.Order != 7 || col.BoardID != board.ID {
		t.Errorf("Unexpected column: %+v", col)
	}

	columns, err := svc.GetColumnsByBoard(ctx, board.ID)
	if err != nil {
		t.Fatalf("GetColumnsByBoard failed: %v", err)
	}
	if len(columns) != 1 {
		t.Errorf("Expected 1 column, got %d", len(columns))
	}
}

func TestCreateColumn_Errors(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	board, err := repo.CreateBoard(ctx, "Board")
	if err != nil {
		t.Fatalf("CreateBoard failed: %v", err)
	}

	tests := []struct {
		name string
		req  CreateColumnRequest
		want error
	}{
		{"empty title", CreateColumnRequest{Title: " ", BoardID: board.ID}, ErrEmptyTitle},
		{"missing board id", CreateColumnRequest{Title: "Todo"}, ErrInvalidBoardID},
		{"unknown board", CreateColumnRequest{Title: "Todo", BoardID: "nope"}, ErrBoardNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateColumn(ctx, tt.req); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDeleteColumn_NotFound(t *testing.T) {
	svc, _ := setupService(t)

	if err := svc.DeleteColumn(context.Background(), "missing"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("Expected ErrColumnNotFound, got %v", err)
	}
}
