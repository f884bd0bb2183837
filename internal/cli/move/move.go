// Package move holds the cli command that moves a card between columns
package move

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/board"
	"github.com/juanbolano/mini-trello/internal/cli"
	"github.com/juanbolano/mini-trello/internal/models"
)

// MoveCmd returns the move command
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a card to another column",
		Long: `Move a card to another column of its board.

The destination is either an explicit column (--to) or the neighbouring
column in display order (--direction=next|prev). Moving a card onto its
own column does nothing.

Examples:
  minitrello move --card=9d0b... --to=7c1e...
  minitrello move --card=9d0b... --direction=next --json
`,
		RunE: runMove,
	}

	cmd.Flags().String("card", "", "Card ID (required)")
	if err := cmd.MarkFlagRequired("card"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("to", "", "Destination column ID")
	cmd.Flags().String("direction", "", "Move to the next or prev column")
	cmd.MarkFlagsMutuallyExclusive("to", "direction")
	cmd.MarkFlagsOneRequired("to", "direction")

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output (card ID only)")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	cardID, _ := cmd.Flags().GetString("card")
	dest, _ := cmd.Flags().GetString("to")
	direction, _ := cmd.Flags().GetString("direction")
	boardID := cli.GetBoardID(cmd)

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		session := c.App.Session
		if _, err := cli.OpenBoard(ctx, session, boardID); err != nil {
			return err
		}

		card, ok := session.Card(cardID)
		if !ok {
			return &board.NotFoundError{Kind: "card", ID: cardID}
		}
		source := card.ColumnID

		if direction != "" {
			col, err := neighbor(session.CurrentColumns(), source, direction)
			if err != nil {
				return err
			}
			dest = col.ID
		}

		if err := session.BeginDrag(cardID, source); err != nil {
			return err
		}
		tx, err := session.EndDrag(ctx, cardID, source, dest)
		if err != nil {
			return err
		}

		if f.Quiet {
			fmt.Println(cardID)
			return nil
		}

		if f.JSON {
			return f.Emit(map[string]any{
				"move": map[string]any{
					"card":  tx.CardID,
					"from":  tx.Source,
					"to":    tx.Dest,
					"state": tx.State.String(),
				},
			})
		}

		if tx.State == board.Idle {
			fmt.Printf("Card '%s' already in that column\n", card.Title)
			return nil
		}
		destTitle := dest
		for _, col := range session.CurrentColumns() {
			if col.ID == dest {
				destTitle = col.Title
			}
		}
		fmt.Printf("✓ Card '%s' moved to '%s'\n", card.Title, destTitle)
		return nil
	})
}

func neighbor(columns []models.Column, columnID, direction string) (models.Column, error) {
	var step int
	switch direction {
	case "next":
		step = 1
	case "prev":
		step = -1
	default:
		return models.Column{}, &board.ValidationError{
			Field:   "direction",
			Message: fmt.Sprintf("%q must be next or prev", direction),
		}
	}

	col, err := models.Neighbor(columns, columnID, step)
	if err != nil {
		return models.Column{}, &board.ValidationError{Field: "direction", Message: err.Error()}
	}
	return col, nil
}
