package models

import "errors"

// Domain-specific errors for relative card movement
var (
	// ErrAlreadyFirstColumn indicates an attempt to move left from the first column
	ErrAlreadyFirstColumn = errors.New("card is already in the first column")

	// ErrAlreadyLastColumn indicates an attempt to move right from the last column
	ErrAlreadyLastColumn = errors.New("card is already in the last column")
)

// Neighbor returns the column adjacent to columnID in display order.
// step is -1 for the previous column and +1 for the next one.
func Neighbor(columns []Column, columnID string, step int) (Column, error) {
	for i, col := range columns {
		if col.ID != columnID {
			continue
		}
		j := i + step
		if j < 0 {
			return Column{}, ErrAlreadyFirstColumn
		}
		if j >= len(columns) {
			return Column{}, ErrAlreadyLastColumn
		}
		return columns[j], nil
	}
	return Column{}, errors.New("column not found")
}
