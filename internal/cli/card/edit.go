package card

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/cli"
)

// EditCmd returns the card edit subcommand
func EditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a card's title or content",
		Long: `Replace the title and/or content of a card. Omitted fields keep
their current value.

Examples:
  minitrello card edit --id=9d0b... --title="Fix login on Safari"
  minitrello card edit --id=9d0b... --content=""
`,
		RunE: runEdit,
	}

	cmd.Flags().String("id", "", "Card ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("content", "", "New content (markdown)")

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	cardID, _ := cmd.Flags().GetString("id")
	title, _ := cmd.Flags().GetString("title")
	content, _ := cmd.Flags().GetString("content")
	titleSet := cmd.Flags().Changed("title")
	contentSet := cmd.Flags().Changed("content")
	boardID := cli.GetBoardID(cmd)

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		if _, err := cli.OpenBoard(ctx, c.App.Session, boardID); err != nil {
			return err
		}
		current, err := lookupCard(c.App.Session, cardID)
		if err != nil {
			return err
		}
		if !titleSet {
			title = current.Title
		}
		if !contentSet {
			content = current.Content
		}

		edited, err := c.App.Session.EditCard(ctx, cardID, title, content)
		if err != nil {
			return err
		}

		if f.Quiet {
			fmt.Println(edited.ID)
			return nil
		}

		if f.JSON {
			return f.Emit(map[string]any{
				"card": edited,
			})
		}

		fmt.Printf("✓ Card '%s' updated (ID: %s)\n", edited.Title, edited.ID)
		return nil
	})
}
