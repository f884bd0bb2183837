package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/cli"
	boardcmd "github.com/juanbolano/mini-trello/internal/cli/board"
	"github.com/juanbolano/mini-trello/internal/cli/card"
	"github.com/juanbolano/mini-trello/internal/cli/column"
	"github.com/juanbolano/mini-trello/internal/cli/move"
	"github.com/juanbolano/mini-trello/internal/cli/refresh"
	"github.com/juanbolano/mini-trello/internal/launcher"
)

var rootCmd = &cobra.Command{
	Use:   "minitrello",
	Short: "minitrello - a terminal kanban board",
	Long: `minitrello is a kanban board for the terminal.

Run without arguments to open the interactive board. The subcommands give
scripts and agents the same operations with --json and --quiet output.

The store is selected by remote.mode in the config file (local, socket or http).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.AddCommand(boardcmd.BoardCmd())
	rootCmd.AddCommand(column.ColumnCmd())
	rootCmd.AddCommand(card.CardCmd())
	rootCmd.AddCommand(move.MoveCmd())
	rootCmd.AddCommand(refresh.RefreshCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		RunE:  runTUI,
	})
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := launcher.Launch(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		return &cli.CommandError{Code: cli.ExitError, Err: err}
	}
	return nil
}

// Execute runs the root command. Errors that did not come from a command
// body are usage errors raised by cobra and are printed here.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var cmdErr *cli.CommandError
	if errors.As(err, &cmdErr) {
		return err
	}
	fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
	fmt.Fprintf(os.Stderr, "💡 Suggestion: run '%s --help'\n", rootCmd.Name())
	return &cli.CommandError{Code: cli.ExitUsage, Err: err}
}
