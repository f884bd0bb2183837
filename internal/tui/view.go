package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/juanbolano/mini-trello/internal/cli/styles"
	"github.com/juanbolano/mini-trello/internal/models"
)

const (
	minColumnWidth = 24
	maxColumnWidth = 40
)

// View renders the board with an optional modal layer on top
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 {
		view.Content = "Loading..."
		return view
	}

	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(m.viewBoard()),
	}
	if modal := m.viewModal(); modal != "" {
		layers = append(layers, centeredLayer(modal, m.width, m.height))
	}

	view.Content = lipgloss.NewCanvas(layers...).Render()
	return view
}

// centeredLayer positions content at the center of the screen
func centeredLayer(content string, screenWidth, screenHeight int) *lipgloss.Layer {
	x := max((screenWidth-lipgloss.Width(content))/2, 0)
	y := max((screenHeight-lipgloss.Height(content))/2, 0)
	return lipgloss.NewLayer(content).X(x).Y(y)
}

func (m Model) viewBoard() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	cols := m.columns()
	if _, ok := m.session.ActiveBoard(); !ok || len(cols) == 0 {
		b.WriteString(m.styles.Subtle.Render(m.emptyHint()))
	} else {
		b.WriteString(m.viewColumns(cols))
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m Model) emptyHint() string {
	km := m.config.KeyMappings
	if _, ok := m.session.ActiveBoard(); !ok {
		return fmt.Sprintf("  No board open. %s: new board • %s: next board • %s: quit", km.CreateBoard, km.NextBoard, km.Quit)
	}
	return fmt.Sprintf("  This board has no columns. %s: new column", km.CreateColumn)
}

func (m Model) viewHeader() string {
	title := "minitrello"
	if active, ok := m.session.ActiveBoard(); ok {
		title += " · " + active.Title
	}
	header := m.styles.Header.Render(title)
	if n := m.session.PendingCount(); n > 0 {
		header += m.styles.Subtle.Render(fmt.Sprintf("  %d move(s) pending", n))
	}
	if m.mode == DragMode {
		header += m.styles.Info.Render("  dragging: ←/→ choose column, enter drop, esc cancel")
	}
	return header
}

func (m Model) columnWidth(count int) int {
	if count == 0 {
		return maxColumnWidth
	}
	return min(max(m.width/count, minColumnWidth), maxColumnWidth)
}

func (m Model) viewColumns(cols []models.Column) string {
	width := m.columnWidth(len(cols))
	visible := max(m.width/width, 1)

	focus := m.colIdx
	if m.mode == DragMode && m.drag != nil {
		focus = m.drag.targetIdx
	}
	start := 0
	if focus >= visible {
		start = focus - visible + 1
	}
	end := min(start+visible, len(cols))

	rendered := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rendered = append(rendered, m.viewColumn(i, cols[i], width))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewColumn(idx int, col models.Column, width int) string {
	// border (2) and padding (2)
	inner := width - 4
	cards := m.session.CardsFor(col.ID)

	var b strings.Builder
	title := truncate.StringWithTail(col.Title, uint(max(inner-6, 1)), "…")
	b.WriteString(m.styles.ColumnTitle.Render(title))
	b.WriteString(m.styles.Subtle.Render(fmt.Sprintf(" (%d)", len(cards))))
	b.WriteString("\n")

	for i, card := range cards {
		selected := m.mode != DragMode && idx == m.colIdx && i == m.cardIdx
		b.WriteString(m.viewCard(card, inner, selected))
		b.WriteString("\n")
	}

	style := m.styles.Column
	if m.mode == DragMode && m.drag != nil && idx == m.drag.targetIdx {
		style = m.styles.DropTarget
	}
	return style.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewCard(card models.Card, width int, selected bool) string {
	text := wordwrap.String(card.Title, max(width-4, 1))

	style := m.styles.Card
	switch {
	case m.mode == DragMode && m.drag != nil && m.drag.cardID == card.ID:
		text = "✥ " + text
		style = m.styles.SelectedCard
	case m.isPending(card.ID):
		text += " ⟳"
		style = m.styles.PendingCard
	case selected:
		style = m.styles.SelectedCard
	}
	return style.Width(width).Render(text)
}

func (m Model) isPending(cardID string) bool {
	tx, ok := m.session.Transaction(cardID)
	return ok && !tx.Done()
}

func (m Model) viewFooter() string {
	if n, ok := m.Notifications.Last(); ok {
		if n.Level == LevelError {
			return m.styles.Error.Render("✗ " + n.Message)
		}
		return m.styles.Info.Render("• " + n.Message)
	}
	return m.styles.Subtle.Render(fmt.Sprintf("%s: help • %s: quit", m.config.KeyMappings.ShowHelp, m.config.KeyMappings.Quit))
}

func (m Model) viewModal() string {
	switch m.mode {
	case FormMode:
		if m.form == nil {
			return ""
		}
		return m.styles.Modal.Width(m.formWidth() + 6).Render(m.form.View())

	case ConfirmMode:
		return m.styles.Modal.Render(m.confirmText() + "\n\n" + m.styles.Subtle.Render("y: delete • n: cancel"))

	case DetailMode:
		card, ok := m.selectedCard()
		if !ok {
			return ""
		}
		return m.viewDetail(card)

	case HelpMode:
		return m.styles.Modal.Width(56).Render(m.helpText())
	}
	return ""
}

func (m Model) confirmText() string {
	switch m.confirm {
	case confirmDeleteColumn:
		for _, col := range m.columns() {
			if col.ID == m.confirmID {
				n := len(m.session.CardsFor(col.ID))
				return m.styles.Delete.Render(fmt.Sprintf("Delete column '%s' and its %d card(s)?", col.Title, n))
			}
		}
	case confirmDeleteCard:
		if card, ok := m.session.Card(m.confirmID); ok {
			return m.styles.Delete.Render(fmt.Sprintf("Delete card '%s'?", card.Title))
		}
	}
	return m.styles.Delete.Render("Delete?")
}

func (m Model) viewDetail(card models.Card) string {
	width := min(max(m.width*2/3, 40), 90)

	var b strings.Builder
	b.WriteString(m.styles.ModalTitle.Render(wordwrap.String(card.Title, width)))
	b.WriteString("\n")
	if col, ok := m.selectedColumn(); ok {
		b.WriteString(m.styles.Label.Render("Column: "))
		b.WriteString(col.Title)
		b.WriteString("\n")
	}
	if !card.CreatedAt.IsZero() {
		b.WriteString(m.styles.Label.Render("Created: "))
		b.WriteString(m.styles.Subtle.Render(card.CreatedAt.Local().Format("Jan 2, 2006 3:04 PM")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.RenderMarkdown(card.Content, width))
	return m.styles.Modal.Width(width + 6).Render(b.String())
}

func (m Model) helpText() string {
	km := m.config.KeyMappings
	return fmt.Sprintf(`MINITRELLO - Keyboard Shortcuts

CARDS
  %-8s Add card to current column
  %-8s Edit selected card
  %-8s Delete selected card
  %-8s View card content

DRAG AND DROP
  %-8s Pick up selected card
  %-8s Drop on highlighted column
  %-8s Cancel drag

COLUMNS AND BOARDS
  %-8s Create column
  %-8s Delete current column
  %-8s Create board
  %-8s Next board
  %-8s Refresh from store

NAVIGATION
  %-8s / %s  Previous / next column
  %-8s / %s  Previous / next card

  %-8s Toggle help
  %-8s Quit`,
		km.AddCard, km.EditCard, km.DeleteCard, km.ViewCard,
		km.PickUp, km.Drop, km.CancelDrag,
		km.CreateColumn, km.DeleteColumn, km.CreateBoard, km.NextBoard, km.Refresh,
		km.PrevColumn, km.NextColumn, km.PrevCard, km.NextCard,
		km.ShowHelp, km.Quit,
	)
}
