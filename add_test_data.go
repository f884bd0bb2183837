//go:build ignore
// +build ignore

// Helper script to seed a demo board into the local database
// Run with: go run add_test_data.go

package main

import (
	"context"
	"log"

	"github.com/juanbolano/mini-trello/internal/config"
	"github.com/juanbolano/mini-trello/internal/database"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.InitDB(ctx, cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)

	board, err := repo.CreateBoard(ctx, "Demo")
	if err != nil {
		log.Fatalf("Failed to create board: %v", err)
	}
	log.Printf("Created board: %s (%s)", board.Title, board.ID)

	lanes := []struct {
		title string
		cards []string
	}{
		{"Todo", []string{"Fix auth bug", "Refactor UI", "Update deps"}},
		{"Doing", []string{"Add tests", "Review PR #42"}},
		{"Done", []string{"Setup CI"}},
	}

	for order, lane := range lanes {
		column, err := repo.CreateColumn(ctx, board.ID, lane.title, order)
		if err != nil {
			log.Fatalf("Failed to create column '%s': %v", lane.title, err)
		}
		for _, title := range lane.cards {
			if _, err := repo.CreateCard(ctx, column.ID, title, ""); err != nil {
				log.Printf("Error creating card '%s': %v", title, err)
			} else {
				log.Printf("Created card: %s", title)
			}
		}
	}

	log.Println("Demo board ready")
}
