package board

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/cli"
)

// ListCmd returns the board list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all boards",
		Long: `List every board known to the store.

Examples:
  # Human-readable output
  minitrello board list

  # JSON output for agents
  minitrello board list --json

  # One ID per line
  minitrello board list --quiet
`,
		RunE: runList,
	}

	cli.AddOutputFlags(cmd, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		boards, err := c.App.Session.ListBoards(ctx)
		if err != nil {
			return err
		}

		if f.Quiet {
			for _, b := range boards {
				fmt.Println(b.ID)
			}
			return nil
		}

		if f.JSON {
			return f.Emit(map[string]any{
				"boards": boards,
			})
		}

		if len(boards) == 0 {
			fmt.Println("No boards found")
			return nil
		}

		fmt.Printf("Found %d board(s):\n\n", len(boards))
		for i, b := range boards {
			fmt.Printf("  %d. %s (ID: %s)\n", i+1, b.Title, b.ID)
		}
		return nil
	})
}
