// Package converters maps the remote API wire shapes to domain models and back
package converters

import (
	"fmt"
	"strings"
	"time"

	"github.com/juanbolano/mini-trello/internal/models"
)

// CreatedLayout is the text form of card creation times on the wire.
// It matches the string form of a Python datetime, which older backends emit.
const CreatedLayout = "2006-01-02 15:04:05.000000"

// createdLayouts are tried in order when parsing a created timestamp
var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// BoardDTO is the wire shape Board{id,title}
type BoardDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ColumnDTO is the wire shape Column{id,title,board,order}
type ColumnDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Board string `json:"board"`
	Order int    `json:"order"`
}

// CardDTO is the wire shape Card{id,title,content,column,created}
type CardDTO struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Column  string `json:"column"`
	Created string `json:"created"`
}

// ParseCreated parses a created timestamp in any of the accepted layouts.
// An empty string yields the zero time.
func ParseCreated(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized created timestamp %q", s)
}

// FormatCreated renders a creation time in CreatedLayout (UTC)
func FormatCreated(t time.Time) string {
	return t.UTC().Format(CreatedLayout)
}

// BoardToModel converts a BoardDTO to models.Board
func BoardToModel(b BoardDTO) models.Board {
	return models.Board{ID: b.ID, Title: b.Title}
}

// BoardFromModel converts a models.Board to its wire shape
func BoardFromModel(b models.Board) BoardDTO {
	return BoardDTO{ID: b.ID, Title: b.Title}
}

// ColumnToModel converts a ColumnDTO to models.Column
func ColumnToModel(c ColumnDTO) models.Column {
	return models.Column{
		ID:      c.ID,
		Title:   c.Title,
		BoardID: c.Board,
		Order:   c.Order,
	}
}

// ColumnFromModel converts a models.Column to its wire shape
func ColumnFromModel(c models.Column) ColumnDTO {
	return ColumnDTO{
		ID:    c.ID,
		Title: c.Title,
		Board: c.BoardID,
		Order: c.Order,
	}
}

// CardToModel converts a CardDTO to models.Card
func CardToModel(c CardDTO) (models.Card, error) {
	created, err := ParseCreated(c.Created)
	if err != nil {
		return models.Card{}, fmt.Errorf("card %s: %w", c.ID, err)
	}
	return models.Card{
		ID:        c.ID,
		Title:     c.Title,
		Content:   c.Content,
		ColumnID:  c.Column,
		CreatedAt: created,
	}, nil
}

// CardFromModel converts a models.Card to its wire shape
func CardFromModel(c models.Card) CardDTO {
	return CardDTO{
		ID:      c.ID,
		Title:   c.Title,
		Content: c.Content,
		Column:  c.ColumnID,
		Created: FormatCreated(c.CreatedAt),
	}
}

// ColumnsFromModels converts a slice of models.Column to wire shapes
func ColumnsFromModels(columns []models.Column) []ColumnDTO {
	result := make([]ColumnDTO, len(columns))
	for i, c := range columns {
		result[i] = ColumnFromModel(c)
	}
	return result
}

// CardsFromModels converts a slice of models.Card to wire shapes
func CardsFromModels(cards []models.Card) []CardDTO {
	result := make([]CardDTO, len(cards))
	for i, c := range cards {
		result[i] = CardFromModel(c)
	}
	return result
}

// BoardsFromModels converts a slice of models.Board to wire shapes
func BoardsFromModels(boards []models.Board) []BoardDTO {
	result := make([]BoardDTO, len(boards))
	for i, b := range boards {
		result[i] = BoardFromModel(b)
	}
	return result
}
