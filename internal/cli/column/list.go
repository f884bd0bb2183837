package column

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/cli"
)

// ListCmd returns the column list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List columns of a board",
		Long: `List the columns of a board in display order.

Examples:
  minitrello column list --board=3f2a...
  minitrello column list --json
`,
		RunE: runList,
	}

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	boardID := cli.GetBoardID(cmd)

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		b, err := cli.OpenBoard(ctx, c.App.Session, boardID)
		if err != nil {
			return err
		}
		columns := c.App.Session.CurrentColumns()

		if f.Quiet {
			for _, col := range columns {
				fmt.Println(col.ID)
			}
			return nil
		}

		if f.JSON {
			columnList := make([]map[string]any, len(columns))
			for i, col := range columns {
				columnList[i] = map[string]any{
					"id":    col.ID,
					"title": col.Title,
					"board": col.BoardID,
					"order": col.Order,
					"cards": len(c.App.Session.CardsFor(col.ID)),
				}
			}
			return f.Emit(map[string]any{
				"columns": columnList,
			})
		}

		if len(columns) == 0 {
			fmt.Printf("No columns found in board '%s'\n", b.Title)
			return nil
		}

		fmt.Printf("Columns in board '%s':\n", b.Title)
		for i, col := range columns {
			fmt.Printf("  %d. %s [order %d, %d cards] (ID: %s)\n",
				i+1, col.Title, col.Order, len(c.App.Session.CardsFor(col.ID)), col.ID)
		}
		return nil
	})
}
