package tui

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/juanbolano/mini-trello/internal/board"
	"github.com/juanbolano/mini-trello/internal/config"
	"github.com/juanbolano/mini-trello/internal/database"
	"github.com/juanbolano/mini-trello/internal/remote"
	"github.com/juanbolano/mini-trello/internal/remote/local"
	"github.com/juanbolano/mini-trello/internal/testutil"
)

// failingMoves wraps a store and rejects every card move
type failingMoves struct {
	board.RemoteStore
}

func (f failingMoves) Mutate(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	if name == remote.OpUpdateCardStatus {
		return nil, errors.New("store unavailable")
	}
	return f.RemoteStore.Mutate(ctx, name, args)
}

// setupTestModel seeds a board with Todo/Doing/Done and opens it in a model
func setupTestModel(t *testing.T, wrap func(board.RemoteStore) board.RemoteStore) (Model, *sql.DB, testutil.TestBoard) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tb := testutil.CreateTestBoardWithColumns(t, db, "Sprint")

	var store board.RemoteStore = local.NewFromRepository(database.NewRepository(db))
	if wrap != nil {
		store = wrap(store)
	}
	session := board.NewSession(store)
	t.Cleanup(session.Close)

	m := InitialModel(context.Background(), session, config.Default())
	t.Cleanup(m.Close)

	m = sendMsg(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = runCmd(t, m, openBoard(m.ctx, session))
	return m, db, tb
}

// sendMsg updates the model with a message and drops the returned command
func sendMsg(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

// sendKey presses a key and returns the command it produced
func sendKey(m Model, k string) (Model, tea.Cmd) {
	next, cmd := m.Update(keyPress(k))
	return next.(Model), cmd
}

// pressKeys presses keys in order, dropping commands
func pressKeys(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = sendKey(m, k)
	}
	return m
}

// typeString types s into the focused field character by character
func typeString(m Model, s string) Model {
	for _, r := range s {
		m = sendMsg(m, tea.KeyPressMsg(tea.Key{Text: string(r), Code: r}))
	}
	return m
}

// runCmd executes a command synchronously and feeds its message back
func runCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return sendMsg(m, cmd())
}

func keyPress(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
	case "esc":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
	case "tab":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab})
	case "space":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "})
	case "ctrl+s":
		return tea.KeyPressMsg(tea.Key{Code: 's', Mod: tea.ModCtrl})
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg(tea.Key{Text: k, Code: r})
}
