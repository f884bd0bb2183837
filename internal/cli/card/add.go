package card

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/cli"
)

// AddCmd returns the card add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new card",
		Long: `Create a card at the end of a column.

Examples:
  minitrello card add --column=7c1e... --title="Fix login"

  # Markdown content
  minitrello card add --column=7c1e... --title="Fix login" --content="## Steps
1. open the app"

  # Capture the ID
  CARD_ID=$(minitrello card add --column=7c1e... --title="Fix login" --quiet)
`,
		RunE: runAdd,
	}

	cmd.Flags().String("column", "", "Column ID (required)")
	if err := cmd.MarkFlagRequired("column"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("title", "", "Card title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("content", "", "Card content (markdown)")

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	columnID, _ := cmd.Flags().GetString("column")
	title, _ := cmd.Flags().GetString("title")
	content, _ := cmd.Flags().GetString("content")
	boardID := cli.GetBoardID(cmd)

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		if _, err := cli.OpenBoard(ctx, c.App.Session, boardID); err != nil {
			return err
		}
		col, err := lookupColumn(c.App.Session, columnID)
		if err != nil {
			return err
		}

		created, err := c.App.Session.AddCard(ctx, col.ID, title, content)
		if err != nil {
			return err
		}

		if f.Quiet {
			fmt.Println(created.ID)
			return nil
		}

		if f.JSON {
			return f.Emit(map[string]any{
				"card": created,
			})
		}

		fmt.Printf("✓ Card '%s' created successfully (ID: %s)\n", created.Title, created.ID)
		fmt.Printf("  Column: %s\n", col.Title)
		return nil
	})
}
