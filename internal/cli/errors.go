package cli

import (
	"errors"

	"github.com/juanbolano/mini-trello/internal/board"
	"github.com/juanbolano/mini-trello/internal/remote"
)

// CommandError carries the process exit code for a failed command. The
// message has already been printed by the formatter.
type CommandError struct {
	Code int
	Err  error
}

func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code for an error returned by a command
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}
	return ExitError
}

// Classify maps an error to a machine-readable code and an exit code
func Classify(err error) (string, int) {
	var (
		remoteErr    *remote.RemoteError
		transportErr *remote.TransportError
	)
	switch {
	case errors.Is(err, board.ErrValidation):
		return "VALIDATION_ERROR", ExitValidation
	case errors.Is(err, board.ErrConflict):
		return "CONFLICT", ExitValidation
	case errors.Is(err, board.ErrNotFound):
		return "NOT_FOUND", ExitNotFound
	case errors.Is(err, board.ErrNoBoards), errors.Is(err, board.ErrNoActiveBoard):
		return "NO_BOARD", ExitUsage
	case errors.Is(err, board.ErrSuperseded):
		return "SUPERSEDED", ExitError
	case errors.As(err, &remoteErr):
		switch remoteErr.Code {
		case remote.CodeNotFound:
			return "NOT_FOUND", ExitNotFound
		case remote.CodeValidation, remote.CodeBadRequest:
			return "VALIDATION_ERROR", ExitValidation
		}
		return "STORE_ERROR", ExitError
	case errors.As(err, &transportErr):
		if transportErr.Code == remote.ErrBadResponse {
			return transportErr.Code.String(), ExitDataErr
		}
		return transportErr.Code.String(), ExitError
	}
	return "ERROR", ExitError
}

// Fail prints err through f and returns it wrapped with its exit code
func Fail(f *OutputFormatter, err error) error {
	code, exit := Classify(err)

	suggestion := ""
	var hinted interface{ Suggestion() string }
	if errors.As(err, &hinted) {
		suggestion = hinted.Suggestion()
	}
	if suggestion == "" && errors.Is(err, board.ErrNoBoards) {
		suggestion = `Create one with: minitrello board add --title="My board"`
	}

	if fmtErr := f.ErrorWithSuggestion(code, err.Error(), suggestion); fmtErr != nil {
		return fmtErr
	}
	return &CommandError{Code: exit, Err: err}
}
