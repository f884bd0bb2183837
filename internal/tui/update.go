package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/juanbolano/mini-trello/internal/board"
	"github.com/juanbolano/mini-trello/internal/tui/forms"
)

// Update is the main dispatcher of the Model-View-Update loop
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	select {
	case <-m.ctx.Done():
		return m, tea.Quit
	default:
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case changeMsg:
		m.clampCursor()
		if m.mode == DragMode && m.drag != nil {
			// the dragged card vanished, e.g. deleted elsewhere or board switched
			if _, ok := m.session.Dragging(m.drag.cardID); !ok {
				m.drag = nil
				m.mode = NormalMode
			}
		}
		return m, waitForChange(m.ctx, m.changes)

	case boardLoadedMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, board.ErrNoBoards) {
				m.notifyInfo(fmt.Sprintf("No boards yet, press %s to create one", m.config.KeyMappings.CreateBoard))
				return m, nil
			}
			slog.Error("loading board", "error", msg.Err)
			m.notifyError(msg.Err)
			return m, nil
		}
		m.colIdx, m.cardIdx = 0, 0
		m.clampCursor()
		m.notifyInfo(fmt.Sprintf("Board '%s'", msg.Board.Title))
		return m, nil

	case opResultMsg:
		if msg.Err != nil {
			m.notifyError(msg.Err)
			return m, nil
		}
		if msg.SelectCard != "" {
			m.selectCard(msg.SelectCard)
		}
		m.clampCursor()
		if msg.Info != "" {
			m.notifyInfo(msg.Info)
		}
		return m, nil

	case moveResultMsg:
		m.clampCursor()
		switch {
		case errors.Is(msg.Err, board.ErrSuperseded):
			m.notifyInfo("Move discarded after board switch")
		case msg.Err != nil:
			m.notifyError(fmt.Errorf("move rolled back: %w", msg.Err))
		case msg.Tx.State == board.Committed:
			m.selectCard(msg.Tx.CardID)
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.mode == FormMode && m.form != nil {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// keyString normalizes key names so config bindings match either spelling of space
func keyString(msg tea.KeyPressMsg) string {
	key := msg.String()
	if key == " " {
		return "space"
	}
	return key
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case DragMode:
		return m.handleDragKey(msg)
	case FormMode:
		return m.handleFormKey(msg)
	case ConfirmMode:
		return m.handleConfirmKey(msg)
	case DetailMode, HelpMode:
		switch keyString(msg) {
		case "esc", "q", "enter", m.config.KeyMappings.ViewCard, m.config.KeyMappings.ShowHelp:
			m.mode = NormalMode
		}
		return m, nil
	}
	return m.handleNormalKey(msg)
}

func (m Model) handleNormalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	km := m.config.KeyMappings
	key := keyString(msg)

	switch key {
	case km.Quit, "ctrl+c":
		return m, tea.Quit

	case km.PrevColumn, "left":
		m.colIdx--
		m.clampCursor()
	case km.NextColumn, "right":
		m.colIdx++
		m.clampCursor()
	case km.PrevCard, "up":
		m.cardIdx--
		m.clampCursor()
	case km.NextCard, "down":
		m.cardIdx++
		m.clampCursor()

	case km.PickUp:
		card, ok := m.selectedCard()
		if !ok {
			return m, nil
		}
		if err := m.session.BeginDrag(card.ID, card.ColumnID); err != nil {
			m.notifyError(err)
			return m, nil
		}
		m.drag = &dragState{cardID: card.ID, source: card.ColumnID, targetIdx: m.colIdx}
		m.mode = DragMode

	case km.AddCard:
		col, ok := m.selectedColumn()
		if !ok {
			m.notifyInfo(fmt.Sprintf("Create a column first (%s)", km.CreateColumn))
			return m, nil
		}
		return m.openForm(formAddCard, fmt.Sprintf("New card in '%s'", col.Title),
			forms.NewTextInput("title", "Title", "What needs doing?", ""),
			forms.NewTextArea("content", "Content", "Markdown supported", m.formWidth(), ""),
		)

	case km.EditCard:
		card, ok := m.selectedCard()
		if !ok {
			return m, nil
		}
		m.editingCardID = card.ID
		return m.openForm(formEditCard, "Edit card",
			forms.NewTextInput("title", "Title", "", card.Title),
			forms.NewTextArea("content", "Content", "Markdown supported", m.formWidth(), card.Content),
		)

	case km.DeleteCard:
		card, ok := m.selectedCard()
		if !ok {
			return m, nil
		}
		m.confirm, m.confirmID = confirmDeleteCard, card.ID
		m.mode = ConfirmMode

	case km.ViewCard:
		if _, ok := m.selectedCard(); ok {
			m.mode = DetailMode
		}

	case km.CreateColumn:
		b, ok := m.session.ActiveBoard()
		if !ok {
			m.notifyInfo(fmt.Sprintf("Create a board first (%s)", km.CreateBoard))
			return m, nil
		}
		return m.openForm(formAddColumn, fmt.Sprintf("New column in '%s'", b.Title),
			forms.NewTextInput("title", "Title", "e.g. Review", ""),
			forms.NewTextInput("order", "Order", "", strconv.Itoa(m.nextColumnOrder())),
		)

	case km.DeleteColumn:
		col, ok := m.selectedColumn()
		if !ok {
			return m, nil
		}
		m.confirm, m.confirmID = confirmDeleteColumn, col.ID
		m.mode = ConfirmMode

	case km.CreateBoard:
		return m.openForm(formAddBoard, "New board",
			forms.NewTextInput("title", "Title", "e.g. Roadmap", ""),
		)

	case km.NextBoard:
		return m, cycleBoard(m.ctx, m.session)

	case km.Refresh:
		return m, reload(m.ctx, m.session)

	case km.ShowHelp:
		m.mode = HelpMode
	}
	return m, nil
}

func (m Model) handleDragKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	km := m.config.KeyMappings
	cols := m.columns()

	switch keyString(msg) {
	case km.PrevColumn, "left":
		if m.drag.targetIdx > 0 {
			m.drag.targetIdx--
		}
	case km.NextColumn, "right":
		if m.drag.targetIdx < len(cols)-1 {
			m.drag.targetIdx++
		}
	case km.Drop, km.PickUp:
		drag := m.drag
		m.drag = nil
		m.mode = NormalMode
		if drag.targetIdx < 0 || drag.targetIdx >= len(cols) {
			m.session.CancelDrag(drag.cardID)
			return m, nil
		}
		dest := cols[drag.targetIdx].ID
		m.colIdx = drag.targetIdx
		return m, dropCard(m.ctx, m.session, drag.cardID, drag.source, dest)
	case km.CancelDrag, km.Quit:
		m.session.CancelDrag(m.drag.cardID)
		m.drag = nil
		m.mode = NormalMode
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch keyString(msg) {
	case "y", "Y":
		m.mode = NormalMode
		id := m.confirmID
		m.confirmID = ""
		if m.confirm == confirmDeleteColumn {
			return m, removeColumn(m.ctx, m.session, id)
		}
		return m, removeCard(m.ctx, m.session, id)
	case "n", "N", "esc", "q":
		m.mode = NormalMode
		m.confirmID = ""
	}
	return m, nil
}

func (m Model) openForm(kind formKind, title string, fields ...forms.Field) (tea.Model, tea.Cmd) {
	form := forms.NewForm(title, m.config.KeyMappings.SaveForm, fields...)
	form.TitleStyle = m.styles.ModalTitle
	form.LabelStyle = m.styles.Label
	form.ErrorStyle = m.styles.Error
	m.form = form
	m.formKind = kind
	m.mode = FormMode
	return m, form.Init()
}

func (m Model) handleFormKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	switch m.form.State() {
	case forms.StateAborted:
		m.form = nil
		m.mode = NormalMode
		return m, nil
	case forms.StateCompleted:
		submit, err := m.submitForm()
		if err != nil {
			m.form.Reopen(err)
			return m, nil
		}
		m.form = nil
		m.mode = NormalMode
		return m, submit
	}
	return m, cmd
}

// submitForm turns the completed form into a command.
// Values that cannot be sent are returned as an error and keep the form open.
func (m Model) submitForm() (tea.Cmd, error) {
	title := m.form.Value("title")
	content := m.form.Value("content")

	switch m.formKind {
	case formAddCard:
		col, ok := m.selectedColumn()
		if !ok {
			return nil, board.ErrNoActiveBoard
		}
		if err := checkTitle(title); err != nil {
			return nil, err
		}
		return addCard(m.ctx, m.session, col.ID, title, content), nil

	case formEditCard:
		if err := checkTitle(title); err != nil {
			return nil, err
		}
		return editCard(m.ctx, m.session, m.editingCardID, title, content), nil

	case formAddColumn:
		b, ok := m.session.ActiveBoard()
		if !ok {
			return nil, board.ErrNoActiveBoard
		}
		if err := checkTitle(title); err != nil {
			return nil, err
		}
		order, err := board.ParseOrder(m.form.Value("order"))
		if err != nil {
			return nil, err
		}
		return addColumn(m.ctx, m.session, b.ID, title, order), nil

	case formAddBoard:
		if err := checkTitle(title); err != nil {
			return nil, err
		}
		return addBoard(m.ctx, m.session, title), nil
	}
	return nil, nil
}

// checkTitle catches blank titles before the form closes. The session
// validates again before any remote call.
func checkTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &board.ValidationError{Field: "title", Message: "must not be empty"}
	}
	return nil
}

// nextColumnOrder suggests an order placing a new column last
func (m Model) nextColumnOrder() int {
	cols := m.columns()
	if len(cols) == 0 {
		return 0
	}
	return cols[len(cols)-1].Order + 1
}

func (m Model) formWidth() int {
	return min(max(m.width/2, 30), 70)
}
