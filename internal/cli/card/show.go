package card

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/board"
	"github.com/juanbolano/mini-trello/internal/cli"
	"github.com/juanbolano/mini-trello/internal/cli/styles"
	"github.com/juanbolano/mini-trello/internal/models"
)

// ShowCmd returns the card show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a card with rendered content",
		Long: `Show one card. Content is rendered as markdown.

Examples:
  minitrello card show --id=9d0b...
  minitrello card show --id=9d0b... --json
`,
		RunE: runShow,
	}

	cmd.Flags().String("id", "", "Card ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
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
		col, err := lookupColumn(c.App.Session, card.ColumnID)
		if err != nil {
			return err
		}

		if f.Quiet {
			fmt.Println(card.ID)
			return nil
		}

		if f.JSON {
			return f.Emit(map[string]any{
				"card": card,
			})
		}

		fmt.Println(renderCard(card, col, c.App.Session))
		return nil
	})
}

// renderCard lays out a card the way it is printed by show
func renderCard(card models.Card, col models.Column, session *board.Session) string {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(card.Title))
	if tx, ok := session.Transaction(card.ID); ok && !tx.Done() {
		content.WriteString("  " + styles.PendingStyle.Render("MOVING"))
	}
	content.WriteString("\n\n")

	content.WriteString(styles.Field("Column:", col.Title, false))
	if !card.CreatedAt.IsZero() {
		content.WriteString(styles.Field("Created:", card.CreatedAt.Local().Format("Jan 2, 2006 3:04 PM"), true))
	}
	content.WriteString(styles.Field("ID:", card.ID, true))

	content.WriteString(styles.SectionStyle.Render("Content"))
	content.WriteString("\n")
	content.WriteString(styles.RenderMarkdown(card.Content, styles.CardWidth-6))

	return styles.RenderCard(content.String())
}
