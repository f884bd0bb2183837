package models

import (
	"cmp"
	"slices"
)

// Column is an ordered lane of a board.
// Order is user supplied and may contain gaps or duplicates; ID breaks ties.
type Column struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	BoardID string `json:"board"`
	Order   int    `json:"order"`
}

// GetID returns the column ID (used by quiet CLI output)
func (c Column) GetID() string {
	return c.ID
}

// CompareColumns orders columns by (Order, ID)
func CompareColumns(a, b Column) int {
	if c := cmp.Compare(a.Order, b.Order); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// SortColumns sorts columns in place by display position
func SortColumns(columns []Column) {
	slices.SortStableFunc(columns, CompareColumns)
}
