package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/cli"
)

// AddCmd returns the board add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new board",
		Long: `Create a new board. The board starts without columns.

Examples:
  minitrello board add --title="Roadmap"

  # Capture the ID for later commands
  BOARD_ID=$(minitrello board add --title="Roadmap" --quiet)
`,
		RunE: runAdd,
	}

	cmd.Flags().String("title", "", "Board title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		created, err := c.App.Session.AddBoard(ctx, title)
		if err != nil {
			return err
		}

		if f.Quiet {
			fmt.Println(created.ID)
			return nil
		}

		if f.JSON {
			return f.Emit(map[string]any{
				"board": created,
			})
		}

		fmt.Printf("✓ Board '%s' created successfully (ID: %s)\n", created.Title, created.ID)
		return nil
	})
}
