package board

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/juanbolano/mini-trello/internal/models"
)

func newTestCollection(columnIDs ...string) *Collection {
	c := NewCollection("b1")
	columns := make([]models.Column, len(columnIDs))
	for i, id := range columnIDs {
		columns[i] = models.Column{ID: id, Title: id, BoardID: "b1", Order: i}
	}
	c.LoadColumns(columns, nil)
	return c
}

// assertSingleMembership checks that every cached card is listed by exactly
// the column its ColumnID names
func assertSingleMembership(t *testing.T, c *Collection) {
	t.Helper()
	seen := make(map[string]string)
	for _, col := range c.Columns() {
		for _, card := range c.CardsFor(col.ID) {
			if prev, dup := seen[card.ID]; dup {
				t.Fatalf("card %s listed in both %s and %s", card.ID, prev, col.ID)
			}
			seen[card.ID] = col.ID
			if card.ColumnID != col.ID {
				t.Fatalf("card %s listed under %s but ColumnID is %s", card.ID, col.ID, card.ColumnID)
			}
		}
	}
	_, total := c.Len()
	if len(seen) != total {
		t.Fatalf("expected %d cards listed, got %d", total, len(seen))
	}
}

func TestCollection_CardInExactlyOneColumn(t *testing.T) {
	columns := []string{"todo", "doing", "done"}
	c := newTestCollection(columns...)
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := range 20 {
		card := models.Card{
			ID:        fmt.Sprintf("card-%02d", i),
			Title:     "card",
			ColumnID:  columns[rng.Intn(len(columns))],
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := c.UpsertCard(card); err != nil {
			t.Fatalf("UpsertCard failed: %v", err)
		}
	}

	for step := range 500 {
		cardID := fmt.Sprintf("card-%02d", rng.Intn(20))
		card, ok := c.Card(cardID)
		if !ok {
			continue
		}
		switch rng.Intn(3) {
		case 0:
			_ = c.MoveCard(cardID, card.ColumnID, columns[rng.Intn(len(columns))])
		case 1:
			// a stale source must never produce a second copy
			_ = c.MoveCard(cardID, columns[rng.Intn(len(columns))], columns[rng.Intn(len(columns))])
		case 2:
			columnID := columns[rng.Intn(len(columns))]
			fetched := c.CardsFor(columnID)
			if len(fetched) > 0 {
				fetched = fetched[1:]
			}
			if err := c.LoadCards(columnID, fetched); err != nil {
				t.Fatalf("step %d: LoadCards failed: %v", step, err)
			}
		}
		assertSingleMembership(t, c)
	}

	t.Logf("✓ Card membership stayed consistent across 500 random operations")
}

func TestCollection_MoveCardStaleSource(t *testing.T) {
	c := newTestCollection("todo", "doing", "done")
	if err := c.UpsertCard(models.Card{ID: "c1", ColumnID: "todo"}); err != nil {
		t.Fatalf("UpsertCard failed: %v", err)
	}

	err := c.MoveCard("c1", "doing", "done")
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Expected ConflictError, got %v", err)
	}
	if !errors.Is(err, ErrConflict) {
		t.Error("Expected error to match ErrConflict")
	}
	if card, _ := c.Card("c1"); card.ColumnID != "todo" {
		t.Errorf("Expected card to stay in todo, got %s", card.ColumnID)
	}

	if err := c.MoveCard("c1", "todo", "done"); err != nil {
		t.Fatalf("MoveCard failed: %v", err)
	}
	if ids := cardIDs(c.CardsFor("done")); !slices.Equal(ids, []string{"c1"}) {
		t.Errorf("Expected [c1] in done, got %v", ids)
	}
	if len(c.CardsFor("todo")) != 0 {
		t.Error("Expected todo to be empty after move")
	}

	t.Logf("✓ Stale source rejected, valid move applied atomically")
}

func TestCollection_UnknownIDs(t *testing.T) {
	c := newTestCollection("todo")
	if err := c.UpsertCard(models.Card{ID: "c1", ColumnID: "todo"}); err != nil {
		t.Fatalf("UpsertCard failed: %v", err)
	}

	tests := []struct {
		name string
		err  error
	}{
		{"load cards of unknown column", c.LoadCards("ghost", nil)},
		{"move unknown card", c.MoveCard("ghost", "todo", "todo")},
		{"move to unknown column", c.MoveCard("c1", "todo", "ghost")},
		{"upsert card in unknown column", c.UpsertCard(models.Card{ID: "c2", ColumnID: "ghost"})},
		{"load card naming unknown column", c.LoadCards("todo", []models.Card{{ID: "c3", ColumnID: "ghost"}})},
		{"remove unknown column", c.RemoveColumn("ghost")},
		{"remove unknown card", c.RemoveCard("ghost")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrNotFound) {
				t.Errorf("Expected ErrNotFound, got %v", tt.err)
			}
		})
	}

	if ids := cardIDs(c.CardsFor("todo")); !slices.Equal(ids, []string{"c1"}) {
		t.Errorf("Failed operations must not change the cache, got %v", ids)
	}
}

func TestCollection_SnapshotOrdering(t *testing.T) {
	c := NewCollection("b1")
	c.LoadColumns([]models.Column{
		{ID: "z", Order: 1},
		{ID: "b", Order: 2},
		{ID: "a", Order: 2},
		{ID: "y", Order: 0},
	}, nil)

	var ids []string
	for _, col := range c.Columns() {
		ids = append(ids, col.ID)
	}
	if !slices.Equal(ids, []string{"y", "z", "a", "b"}) {
		t.Errorf("Expected columns ordered by (order, id), got %v", ids)
	}

	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	err := c.LoadCards("a", []models.Card{
		{ID: "late", CreatedAt: created.Add(time.Hour)},
		{ID: "tie-b", CreatedAt: created},
		{ID: "tie-a", CreatedAt: created},
	})
	if err != nil {
		t.Fatalf("LoadCards failed: %v", err)
	}
	if got := cardIDs(c.CardsFor("a")); !slices.Equal(got, []string{"tie-a", "tie-b", "late"}) {
		t.Errorf("Expected cards ordered by (created, id), got %v", got)
	}

	snapshot := c.CardsFor("a")
	snapshot[0].Title = "mutated"
	if card, _ := c.Card("tie-a"); card.Title == "mutated" {
		t.Error("Snapshots must not alias the cache")
	}
}

func TestCollection_LoadColumnsPrunesOrphans(t *testing.T) {
	c := newTestCollection("todo", "doing")
	for _, card := range []models.Card{
		{ID: "kept", ColumnID: "todo"},
		{ID: "orphan", ColumnID: "doing"},
		{ID: "pinned", ColumnID: "doing"},
	} {
		if err := c.UpsertCard(card); err != nil {
			t.Fatalf("UpsertCard failed: %v", err)
		}
	}

	c.LoadColumns([]models.Column{{ID: "todo"}}, func(cardID string) bool {
		return cardID == "pinned"
	})

	if _, ok := c.Card("kept"); !ok {
		t.Error("Expected card of surviving column to be kept")
	}
	if _, ok := c.Card("orphan"); ok {
		t.Error("Expected card of removed column to be pruned")
	}
	if _, ok := c.Card("pinned"); !ok {
		t.Error("Expected pinned card to survive pruning")
	}
}

func TestCollection_RemoveColumnRemovesCards(t *testing.T) {
	c := newTestCollection("todo", "doing")
	_ = c.UpsertCard(models.Card{ID: "c1", ColumnID: "todo"})
	_ = c.UpsertCard(models.Card{ID: "c2", ColumnID: "doing"})

	if err := c.RemoveColumn("todo"); err != nil {
		t.Fatalf("RemoveColumn failed: %v", err)
	}
	if _, ok := c.Card("c1"); ok {
		t.Error("Expected c1 to be removed with its column")
	}
	if _, ok := c.Card("c2"); !ok {
		t.Error("Expected c2 to remain")
	}
	if cols, _ := c.Len(); cols != 1 {
		t.Errorf("Expected 1 column, got %d", cols)
	}
}
