package board

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/juanbolano/mini-trello/internal/database"
)

func setupService(t *testing.T) Service {
	t.Helper()
	db, err := database.OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewService(database.NewRepository(db))
}

func TestCreateBoard(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	board, err := svc.CreateBoard(ctx, CreateBoardRequest{Title: "  Roadmap  "})
	if err != nil {
		t.Fatalf("CreateBoard failed: %v", err)
	}
	if board.Title != "Roadmap" {
		t.Errorf("Expected trimmed title, got %q", board.Title)
	}

	boards, err := svc.ListBoards(ctx)
	if err != nil {
		t.Fatalf("ListBoards failed: %v", err)
	}
	if len(boards) != 1 || boards[0].ID != board.ID {
		t.Errorf("Expected the created board to be listed, got %+v", boards)
	}
}

func TestCreateBoard_Validation(t *testing.T) {
	svc := setupService(t)

	tests := []struct {
		name  string
		title string
		want  error
	}{
		{"empty", "", ErrEmptyTitle},
		{"whitespace", "   ", ErrEmptyTitle},
		{"too long", strings.Repeat("x", MaxTitleLength+1), ErrTitleTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBoard(context.Background(), CreateBoardRequest{Title: tt.title})
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGetBoard_NotFound(t *testing.T) {
	svc := setupService(t)

	if _, err := svc.GetBoard(context.Background(), "missing"); !errors.Is(err, ErrBoardNotFound) {
		t.Errorf("Expected ErrBoardNotFound, got %v", err)
	}
	if _, err := svc.GetBoard(context.Background(), ""); !errors.Is(err, ErrInvalidBoardID) {
		t.Errorf("Expected ErrInvalidBoardID, got %v", err)
	}
}
