package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/board"
	"github.com/juanbolano/mini-trello/internal/models"
)

// BoardEnv names the environment variable holding the default board id
const BoardEnv = "MINITRELLO_BOARD"

// AddOutputFlags registers the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command, quietHelp string) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, quietHelp)
}

// Formatter builds the OutputFormatter selected by --json and --quiet
func Formatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// AddBoardFlag registers --board
func AddBoardFlag(cmd *cobra.Command) {
	cmd.Flags().String("board", "", "Board ID (uses "+BoardEnv+" env var, then the first board, if not specified)")
}

// GetBoardID returns --board, falling back to MINITRELLO_BOARD
func GetBoardID(cmd *cobra.Command) string {
	if id, _ := cmd.Flags().GetString("board"); id != "" {
		return id
	}
	return os.Getenv(BoardEnv)
}

// OpenBoard activates the board named by id, or the first board when id is empty
func OpenBoard(ctx context.Context, session *board.Session, id string) (models.Board, error) {
	if id == "" {
		return session.Open(ctx)
	}

	boards, err := session.ListBoards(ctx)
	if err != nil {
		return models.Board{}, err
	}
	for _, b := range boards {
		if b.ID == id {
			return b, session.SwitchBoard(ctx, b)
		}
	}
	return models.Board{}, &board.NotFoundError{Kind: "board", ID: id}
}

// Run sets up the CLI for cmd, calls fn and releases the CLI. Errors from
// fn are printed through the formatter and carry an exit code.
func Run(cmd *cobra.Command, fn func(ctx context.Context, c *CLI, f *OutputFormatter) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := Formatter(cmd)

	cliInstance, err := GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return &CommandError{Code: ExitError, Err: err}
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	if err := fn(ctx, cliInstance, formatter); err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			return err
		}
		return Fail(formatter, err)
	}
	return nil
}
