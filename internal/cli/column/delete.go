package column

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/board"
	"github.com/juanbolano/mini-trello/internal/cli"
)

// DeleteCmd returns the column delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a column",
		Long: `Delete a column. A column that still holds cards is only deleted
with --force, and its cards are deleted with it.

Examples:
  minitrello column delete --id=7c1e...
  minitrello column delete --id=7c1e... --force
`,
		RunE: runDelete,
	}

	cmd.Flags().String("id", "", "Column ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().Bool("force", false, "Delete the column even if it holds cards")

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	columnID, _ := cmd.Flags().GetString("id")
	force, _ := cmd.Flags().GetBool("force")
	boardID := cli.GetBoardID(cmd)

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		if _, err := cli.OpenBoard(ctx, c.App.Session, boardID); err != nil {
			return err
		}

		var target string
		for _, col := range c.App.Session.CurrentColumns() {
			if col.ID == columnID {
				target = col.Title
			}
		}
		if target == "" {
			return &board.NotFoundError{Kind: "column", ID: columnID}
		}

		if n := len(c.App.Session.CardsFor(columnID)); n > 0 && !force {
			return &board.ValidationError{
				Field:   "force",
				Message: fmt.Sprintf("column '%s' holds %d card(s), pass --force to delete them too", target, n),
			}
		}

		if err := c.App.Session.RemoveColumn(ctx, columnID); err != nil {
			return err
		}

		if f.Quiet {
			fmt.Println(columnID)
			return nil
		}

		if f.JSON {
			return f.Emit(map[string]any{
				"deleted": columnID,
			})
		}

		fmt.Printf("✓ Column '%s' deleted (ID: %s)\n", target, columnID)
		return nil
	})
}
