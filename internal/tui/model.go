// Package tui is the interactive kanban board. It renders the session cache
// and turns key presses into drags and CRUD calls.
package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/juanbolano/mini-trello/internal/board"
	"github.com/juanbolano/mini-trello/internal/config"
	"github.com/juanbolano/mini-trello/internal/models"
	"github.com/juanbolano/mini-trello/internal/tui/forms"
)

// Mode represents the current interaction mode of the TUI
type Mode int

const (
	NormalMode  Mode = iota // Default navigation mode
	DragMode                // A card is picked up and follows the drop target
	FormMode                // Add/edit form is open
	ConfirmMode             // Waiting for y/n on a delete
	DetailMode              // Card content rendered as markdown
	HelpMode                // Displaying help screen
)

type formKind int

const (
	formAddCard formKind = iota
	formEditCard
	formAddColumn
	formAddBoard
)

type confirmKind int

const (
	confirmDeleteCard confirmKind = iota
	confirmDeleteColumn
)

// dragState tracks the card under the cursor while in DragMode
type dragState struct {
	cardID    string
	source    string
	targetIdx int
}

// Model is the bubbletea model of the board screen
type Model struct {
	ctx     context.Context
	session *board.Session
	config  *config.Config
	styles  Styles

	changes     chan board.Change
	unsubscribe func()

	width  int
	height int
	mode   Mode

	colIdx  int
	cardIdx int

	drag          *dragState
	form          *forms.Form
	formKind      formKind
	editingCardID string
	confirm       confirmKind
	confirmID     string

	Notifications *NotificationState
}

// InitialModel creates the board model and subscribes it to session changes.
// Call Close when the program exits.
func InitialModel(ctx context.Context, session *board.Session, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	// one slot is enough: every change triggers a full re-read of the snapshot
	changes := make(chan board.Change, 1)
	unsubscribe := session.OnChange(func(c board.Change) {
		select {
		case changes <- c:
		default:
		}
	})

	return Model{
		ctx:           ctx,
		session:       session,
		config:        cfg,
		styles:        NewStyles(cfg.ColorScheme),
		changes:       changes,
		unsubscribe:   unsubscribe,
		Notifications: &NotificationState{},
	}
}

// Init loads the first board and starts listening for cache changes
func (m Model) Init() tea.Cmd {
	return tea.Batch(openBoard(m.ctx, m.session), waitForChange(m.ctx, m.changes))
}

// Close removes the session listener
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Mode returns the current interaction mode
func (m Model) Mode() Mode {
	return m.mode
}

// columns returns the active board's columns in display order
func (m Model) columns() []models.Column {
	return m.session.CurrentColumns()
}

// selectedColumn returns the column under the cursor
func (m Model) selectedColumn() (models.Column, bool) {
	cols := m.columns()
	if m.colIdx < 0 || m.colIdx >= len(cols) {
		return models.Column{}, false
	}
	return cols[m.colIdx], true
}

// selectedCard returns the card under the cursor
func (m Model) selectedCard() (models.Card, bool) {
	col, ok := m.selectedColumn()
	if !ok {
		return models.Card{}, false
	}
	cards := m.session.CardsFor(col.ID)
	if m.cardIdx < 0 || m.cardIdx >= len(cards) {
		return models.Card{}, false
	}
	return cards[m.cardIdx], true
}

// clampCursor keeps the cursor inside the current snapshot
func (m *Model) clampCursor() {
	cols := m.columns()
	if len(cols) == 0 {
		m.colIdx, m.cardIdx = 0, 0
		return
	}
	m.colIdx = min(max(m.colIdx, 0), len(cols)-1)
	n := len(m.session.CardsFor(cols[m.colIdx].ID))
	if n == 0 {
		m.cardIdx = 0
		return
	}
	m.cardIdx = min(max(m.cardIdx, 0), n-1)
}

// selectCard moves the cursor onto cardID if it is cached
func (m *Model) selectCard(cardID string) {
	for ci, col := range m.columns() {
		for ki, card := range m.session.CardsFor(col.ID) {
			if card.ID == cardID {
				m.colIdx, m.cardIdx = ci, ki
				return
			}
		}
	}
}

func (m *Model) notifyInfo(msg string) {
	m.Notifications.Add(LevelInfo, msg)
}

func (m *Model) notifyError(err error) {
	m.Notifications.Add(LevelError, err.Error())
}
