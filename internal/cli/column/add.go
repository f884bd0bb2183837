package column

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/board"
	"github.com/juanbolano/mini-trello/internal/cli"
)

// AddCmd returns the column add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new column",
		Long: `Create a new column in a board. Columns are displayed by ascending
order; gaps and duplicates are allowed.

Examples:
  minitrello column add --title="Review" --order=2

  # Quiet mode for bash capture
  COLUMN_ID=$(minitrello column add --title="Review" --order=2 --quiet)
`,
		RunE: runAdd,
	}

	cmd.Flags().String("title", "", "Column title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("order", "", "Display order, an integer (required)")
	if err := cmd.MarkFlagRequired("order"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	rawOrder, _ := cmd.Flags().GetString("order")
	boardID := cli.GetBoardID(cmd)

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		order, err := board.ParseOrder(rawOrder)
		if err != nil {
			return err
		}
		b, err := cli.OpenBoard(ctx, c.App.Session, boardID)
		if err != nil {
			return err
		}

		created, err := c.App.Session.AddColumn(ctx, b.ID, title, order)
		if err != nil {
			return err
		}

		if f.Quiet {
			fmt.Println(created.ID)
			return nil
		}

		if f.JSON {
			return f.Emit(map[string]any{
				"column": created,
			})
		}

		fmt.Printf("✓ Column '%s' created successfully (ID: %s)\n", created.Title, created.ID)
		fmt.Printf("  Board: %s\n", b.Title)
		return nil
	})
}
