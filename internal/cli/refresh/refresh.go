// Package refresh holds the cli command that reloads a board from the store
package refresh

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/cli"
)

// RefreshCmd returns the refresh command
func RefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Reload a board and summarize it",
		Long: `Fetch the columns of a board and the cards of every column, then
print a one-line summary per column. Useful to check that the store is
reachable.

Examples:
  minitrello refresh
  minitrello refresh --board=3f2a... --json
`,
		RunE: runRefresh,
	}

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output (board ID only)")

	return cmd
}

func runRefresh(cmd *cobra.Command, args []string) error {
	boardID := cli.GetBoardID(cmd)

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		session := c.App.Session
		b, err := cli.OpenBoard(ctx, session, boardID)
		if err != nil {
			return err
		}
		if err := session.Reload(ctx); err != nil {
			return err
		}

		columns := session.CurrentColumns()
		total := 0
		for _, col := range columns {
			total += len(session.CardsFor(col.ID))
		}

		if f.Quiet {
			fmt.Println(b.ID)
			return nil
		}

		if f.JSON {
			counts := make(map[string]int, len(columns))
			for _, col := range columns {
				counts[col.ID] = len(session.CardsFor(col.ID))
			}
			return f.Emit(map[string]any{
				"board":   b,
				"columns": len(columns),
				"cards":   total,
				"counts":  counts,
			})
		}

		fmt.Printf("Board '%s': %d columns, %d cards\n", b.Title, len(columns), total)
		for _, col := range columns {
			fmt.Printf("  %-20s %d\n", col.Title, len(session.CardsFor(col.ID)))
		}
		return nil
	})
}
