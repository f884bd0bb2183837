package board

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. The typed errors below match their kind sentinel.
var (
	ErrValidation = errors.New("validation failed")
	ErrFetch      = errors.New("remote store unavailable")
	ErrConflict   = errors.New("conflicting operation")
	ErrNotFound   = errors.New("not found")

	// ErrStaleRefresh is returned when a refresh response was superseded by a newer
	// request for the same scope (or by a board switch) and was discarded.
	ErrStaleRefresh = errors.New("refresh superseded")

	// ErrSuperseded is reported for a move whose board was switched while pending
	ErrSuperseded = errors.New("board switched while move was pending")

	ErrNoBoards      = errors.New("no boards exist")
	ErrNoActiveBoard = errors.New("no active board")
)

// ValidationError rejects input before any remote call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FetchError wraps a network or remote failure of a query or mutation.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// Suggestion returns a user-facing hint carried by the transport error, if any
func (e *FetchError) Suggestion() string {
	var hinted interface{ Suggestion() string }
	if errors.As(e.Err, &hinted) {
		return hinted.Suggestion()
	}
	return ""
}

// ConflictError rejects a stale drag or a duplicate in-flight move.
type ConflictError struct {
	CardID string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("card %s: %s", e.CardID, e.Reason)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NotFoundError reports an unknown id where an existing entity is required.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// fetchError wraps err as a FetchError for op unless it already is one
func fetchError(op string, err error) error {
	var fe *FetchError
	if errors.As(err, &fe) {
		return err
	}
	return &FetchError{Op: op, Err: err}
}
