package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/juanbolano/mini-trello/internal/board"
	"github.com/juanbolano/mini-trello/internal/models"
)

// changeMsg is delivered when the session cache changed
type changeMsg struct {
	Change board.Change
}

// boardLoadedMsg reports the outcome of opening or switching a board
type boardLoadedMsg struct {
	Board models.Board
	Err   error
}

// opResultMsg reports the outcome of a CRUD call
type opResultMsg struct {
	Info string
	Err  error
	// SelectCard moves the cursor onto a created card
	SelectCard string
}

// moveResultMsg reports a settled drag transaction
type moveResultMsg struct {
	Tx  board.Transaction
	Err error
}

// waitForChange blocks until the session reports a change.
// Update re-arms it after every changeMsg.
func waitForChange(ctx context.Context, changes <-chan board.Change) tea.Cmd {
	return func() tea.Msg {
		select {
		case c := <-changes:
			return changeMsg{Change: c}
		case <-ctx.Done():
			return nil
		}
	}
}

func openBoard(ctx context.Context, session *board.Session) tea.Cmd {
	return func() tea.Msg {
		b, err := session.Open(ctx)
		return boardLoadedMsg{Board: b, Err: err}
	}
}

// cycleBoard switches to the board after the active one, wrapping around
func cycleBoard(ctx context.Context, session *board.Session) tea.Cmd {
	return func() tea.Msg {
		boards, err := session.ListBoards(ctx)
		if err != nil {
			return boardLoadedMsg{Err: err}
		}
		if len(boards) == 0 {
			return boardLoadedMsg{Err: board.ErrNoBoards}
		}
		next := boards[0]
		if active, ok := session.ActiveBoard(); ok {
			for i, b := range boards {
				if b.ID == active.ID {
					next = boards[(i+1)%len(boards)]
				}
			}
		}
		err = session.SwitchBoard(ctx, next)
		return boardLoadedMsg{Board: next, Err: err}
	}
}

func reload(ctx context.Context, session *board.Session) tea.Cmd {
	return func() tea.Msg {
		if err := session.Reload(ctx); err != nil {
			return opResultMsg{Err: err}
		}
		return opResultMsg{Info: "Board refreshed"}
	}
}

// dropCard settles a drag. EndDrag blocks until the store answers, so it
// runs as a command while the optimistic move is already on screen.
func dropCard(ctx context.Context, session *board.Session, cardID, source, dest string) tea.Cmd {
	return func() tea.Msg {
		tx, err := session.EndDrag(ctx, cardID, source, dest)
		return moveResultMsg{Tx: tx, Err: err}
	}
}

func addCard(ctx context.Context, session *board.Session, columnID, title, content string) tea.Cmd {
	return func() tea.Msg {
		card, err := session.AddCard(ctx, columnID, title, content)
		if err != nil {
			return opResultMsg{Err: err}
		}
		return opResultMsg{Info: fmt.Sprintf("Created card '%s'", card.Title), SelectCard: card.ID}
	}
}

func editCard(ctx context.Context, session *board.Session, cardID, title, content string) tea.Cmd {
	return func() tea.Msg {
		card, err := session.EditCard(ctx, cardID, title, content)
		if err != nil {
			return opResultMsg{Err: err}
		}
		return opResultMsg{Info: fmt.Sprintf("Updated card '%s'", card.Title)}
	}
}

func removeCard(ctx context.Context, session *board.Session, cardID string) tea.Cmd {
	return func() tea.Msg {
		if err := session.RemoveCard(ctx, cardID); err != nil {
			return opResultMsg{Err: err}
		}
		return opResultMsg{Info: "Card deleted"}
	}
}

func addColumn(ctx context.Context, session *board.Session, boardID, title string, order int) tea.Cmd {
	return func() tea.Msg {
		col, err := session.AddColumn(ctx, boardID, title, order)
		if err != nil {
			return opResultMsg{Err: err}
		}
		return opResultMsg{Info: fmt.Sprintf("Created column '%s'", col.Title)}
	}
}

func removeColumn(ctx context.Context, session *board.Session, columnID string) tea.Cmd {
	return func() tea.Msg {
		if err := session.RemoveColumn(ctx, columnID); err != nil {
			return opResultMsg{Err: err}
		}
		return opResultMsg{Info: "Column deleted"}
	}
}

// addBoard creates a board and switches to it
func addBoard(ctx context.Context, session *board.Session, title string) tea.Cmd {
	return func() tea.Msg {
		b, err := session.AddBoard(ctx, title)
		if err != nil {
			return boardLoadedMsg{Err: err}
		}
		err = session.SwitchBoard(ctx, b)
		return boardLoadedMsg{Board: b, Err: err}
	}
}
