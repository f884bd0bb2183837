package card

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/cli"
)

// DeleteCmd returns the card delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a card",
		Long: `Delete a card.

Examples:
  minitrello card delete --id=9d0b...
`,
		RunE: runDelete,
	}

	cmd.Flags().String("id", "", "Card ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	cardID, _ := cmd.Flags().GetString("id")
	boardID := cli.GetBoardID(cmd)

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		if _, err := cli.OpenBoard(ctx, c.App.Session, boardID); err != nil {
			return err
		}
		card, err := lookupCard(c.App.Session, cardID)
		if err != nil {
			return err
		}

		if err := c.App.Session.RemoveCard(ctx, cardID); err != nil {
			return err
		}

		if f.Quiet {
			fmt.Println(cardID)
			return nil
		}

		if f.JSON {
			return f.Emit(map[string]any{
				"deleted": cardID,
			})
		}

		fmt.Printf("✓ Card '%s' deleted (ID: %s)\n", card.Title, cardID)
		return nil
	})
}
