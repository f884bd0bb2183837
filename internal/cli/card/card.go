// Package card holds the cli commands for the cards of a board
package card

import (
	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/board"
	"github.com/juanbolano/mini-trello/internal/models"
)

// CardCmd returns the card parent command
func CardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(AddCmd())
	cmd.AddCommand(EditCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}

// lookupCard finds a card of the active board in the session cache
func lookupCard(session *board.Session, id string) (models.Card, error) {
	card, ok := session.Card(id)
	if !ok {
		return models.Card{}, &board.NotFoundError{Kind: "card", ID: id}
	}
	return card, nil
}

// lookupColumn finds a column of the active board in the session cache
func lookupColumn(session *board.Session, id string) (models.Column, error) {
	for _, col := range session.CurrentColumns() {
		if col.ID == id {
			return col, nil
		}
	}
	return models.Column{}, &board.NotFoundError{Kind: "column", ID: id}
}
