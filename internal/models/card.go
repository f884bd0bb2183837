package models

import (
	"cmp"
	"slices"
	"time"
)

// Card belongs to exactly one column. ColumnID is the sole authority for membership.
type Card struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ColumnID  string    `json:"column"`
	CreatedAt time.Time `json:"created"`
}

// GetID returns the card ID (used by quiet CLI output)
func (c Card) GetID() string {
	return c.ID
}

// CompareCards orders cards within a column by (CreatedAt, ID)
func CompareCards(a, b Card) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// SortCards sorts cards in place by creation time
func SortCards(cards []Card) {
	slices.SortStableFunc(cards, CompareCards)
}
