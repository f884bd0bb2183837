package board

import (
	"github.com/juanbolano/mini-trello/internal/models"
)

// Collection is the ordered cache of one board's columns and cards.
//
// Cards are stored by id only. A column's card list is derived by filtering on
// ColumnID, so a card can never appear in two columns or be missing from the
// column its ColumnID names. Collection is not safe for concurrent use; Session
// serializes access.
type Collection struct {
	boardID string
	columns map[string]models.Column
	cards   map[string]models.Card
}

// NewCollection returns an empty cache for boardID
func NewCollection(boardID string) *Collection {
	return &Collection{
		boardID: boardID,
		columns: make(map[string]models.Column),
		cards:   make(map[string]models.Card),
	}
}

// BoardID returns the board this cache belongs to
func (c *Collection) BoardID() string {
	return c.boardID
}

// LoadColumns replaces the column cache. Cards of columns that are no longer
// present are dropped with them unless pinned reports them as held by a
// pending move. pinned may be nil.
func (c *Collection) LoadColumns(columns []models.Column, pinned func(cardID string) bool) {
	c.columns = make(map[string]models.Column, len(columns))
	for _, col := range columns {
		c.columns[col.ID] = col
	}
	for id, card := range c.cards {
		if _, ok := c.columns[card.ColumnID]; ok {
			continue
		}
		if pinned != nil && pinned(id) {
			continue
		}
		delete(c.cards, id)
	}
}

// LoadCards replaces the cached card list of one column.
// Cards with an empty ColumnID are assigned to columnID. Cards naming another
// known column are stored under that column. Nothing changes on error.
func (c *Collection) LoadCards(columnID string, cards []models.Card) error {
	if _, ok := c.columns[columnID]; !ok {
		return &NotFoundError{Kind: "column", ID: columnID}
	}

	normalized := make([]models.Card, len(cards))
	for i, card := range cards {
		if card.ColumnID == "" {
			card.ColumnID = columnID
		}
		if _, ok := c.columns[card.ColumnID]; !ok {
			return &NotFoundError{Kind: "column", ID: card.ColumnID}
		}
		normalized[i] = card
	}

	for id, card := range c.cards {
		if card.ColumnID == columnID {
			delete(c.cards, id)
		}
	}
	for _, card := range normalized {
		c.cards[card.ID] = card
	}
	return nil
}

// MoveCard reassigns a card from one column to another in a single step.
// It fails with ConflictError if the card is not currently under from.
func (c *Collection) MoveCard(cardID, from, to string) error {
	card, ok := c.cards[cardID]
	if !ok {
		return &NotFoundError{Kind: "card", ID: cardID}
	}
	if card.ColumnID != from {
		return &ConflictError{CardID: cardID, Reason: "card is no longer in the source column"}
	}
	if _, ok := c.columns[to]; !ok {
		return &NotFoundError{Kind: "column", ID: to}
	}
	card.ColumnID = to
	c.cards[cardID] = card
	return nil
}

// UpsertColumn inserts or replaces a column by id
func (c *Collection) UpsertColumn(col models.Column) {
	c.columns[col.ID] = col
}

// RemoveColumn deletes a column and the cards it holds
func (c *Collection) RemoveColumn(id string) error {
	if _, ok := c.columns[id]; !ok {
		return &NotFoundError{Kind: "column", ID: id}
	}
	delete(c.columns, id)
	for cardID, card := range c.cards {
		if card.ColumnID == id {
			delete(c.cards, cardID)
		}
	}
	return nil
}

// UpsertCard inserts or replaces a card by id. Its column must be cached.
func (c *Collection) UpsertCard(card models.Card) error {
	if _, ok := c.columns[card.ColumnID]; !ok {
		return &NotFoundError{Kind: "column", ID: card.ColumnID}
	}
	c.cards[card.ID] = card
	return nil
}

// RemoveCard deletes a card
func (c *Collection) RemoveCard(id string) error {
	if _, ok := c.cards[id]; !ok {
		return &NotFoundError{Kind: "card", ID: id}
	}
	delete(c.cards, id)
	return nil
}

// Column looks up a cached column
func (c *Collection) Column(id string) (models.Column, bool) {
	col, ok := c.columns[id]
	return col, ok
}

// Card looks up a cached card
func (c *Collection) Card(id string) (models.Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// Columns returns the cached columns sorted by (order, id)
func (c *Collection) Columns() []models.Column {
	columns := make([]models.Column, 0, len(c.columns))
	for _, col := range c.columns {
		columns = append(columns, col)
	}
	models.SortColumns(columns)
	return columns
}

// CardsFor returns the cards whose ColumnID is columnID, sorted by (created, id)
func (c *Collection) CardsFor(columnID string) []models.Card {
	cards := make([]models.Card, 0)
	for _, card := range c.cards {
		if card.ColumnID == columnID {
			cards = append(cards, card)
		}
	}
	models.SortCards(cards)
	return cards
}

// Len reports the number of cached columns and cards
func (c *Collection) Len() (columns, cards int) {
	return len(c.columns), len(c.cards)
}
