package board

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/cli"
)

// UseCmd returns the board use subcommand
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use [board-id]",
		Short: "Set board context for current shell session",
		Long: `Set the current board using an environment variable.
This command outputs shell commands that should be evaluated:

  eval $(minitrello board use 3f2a...)   # Use a board
  eval $(minitrello board use --clear)   # Clear board context

The ` + cli.BoardEnv + ` environment variable is set in your current shell
session only. The --board flag on other commands takes precedence over it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUse,
	}

	cmd.Flags().Bool("clear", false, "Clear the current board context")

	return cmd
}

func runUse(cmd *cobra.Command, args []string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	if clearFlag {
		fmt.Println("unset " + cli.BoardEnv)
		fmt.Fprintf(os.Stderr, "Cleared board context\n")
		return nil
	}

	if len(args) == 0 {
		return &cli.CommandError{
			Code: cli.ExitUsage,
			Err:  fmt.Errorf("board ID required\nUsage: eval $(minitrello board use <board-id>)"),
		}
	}

	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		b, err := cli.OpenBoard(ctx, c.App.Session, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("export %s=%s\n", cli.BoardEnv, b.ID)
		fmt.Fprintf(os.Stderr, "Using board '%s'\n", b.Title)
		return nil
	})
}
