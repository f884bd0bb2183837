package card

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/cli"
	"github.com/juanbolano/mini-trello/internal/models"
)

// ListCmd returns the card list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cards of a board",
		Long: `List the cards of a board grouped by column, oldest first.

Examples:
  minitrello card list
  minitrello card list --column=7c1e... --json
`,
		RunE: runList,
	}

	cmd.Flags().String("column", "", "Only list cards of this column")
	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	columnID, _ := cmd.Flags().GetString("column")
	boardID := cli.GetBoardID(cmd)

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		b, err := cli.OpenBoard(ctx, c.App.Session, boardID)
		if err != nil {
			return err
		}

		columns := c.App.Session.CurrentColumns()
		if columnID != "" {
			col, err := lookupColumn(c.App.Session, columnID)
			if err != nil {
				return err
			}
			columns = []models.Column{col}
		}

		var cards []models.Card
		for _, col := range columns {
			cards = append(cards, c.App.Session.CardsFor(col.ID)...)
		}

		if f.Quiet {
			for _, card := range cards {
				fmt.Println(card.ID)
			}
			return nil
		}

		if f.JSON {
			if cards == nil {
				cards = []models.Card{}
			}
			return f.Emit(map[string]any{
				"cards": cards,
			})
		}

		if len(cards) == 0 {
			fmt.Printf("No cards found in board '%s'\n", b.Title)
			return nil
		}

		for _, col := range columns {
			colCards := c.App.Session.CardsFor(col.ID)
			fmt.Printf("%s (%d)\n", col.Title, len(colCards))
			for _, card := range colCards {
				fmt.Printf("  - %s (ID: %s)\n", card.Title, card.ID)
			}
		}
		return nil
	})
}
