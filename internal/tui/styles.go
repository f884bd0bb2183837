package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/juanbolano/mini-trello/internal/config"
)

// Styles holds every lipgloss style the board view uses
type Styles struct {
	Header       lipgloss.Style
	Subtle       lipgloss.Style
	Column       lipgloss.Style
	ColumnTitle  lipgloss.Style
	DropTarget   lipgloss.Style
	Card         lipgloss.Style
	SelectedCard lipgloss.Style
	PendingCard  lipgloss.Style
	Modal        lipgloss.Style
	ModalTitle   lipgloss.Style
	Label        lipgloss.Style
	Info         lipgloss.Style
	Error        lipgloss.Style
	Delete       lipgloss.Style
}

// NewStyles builds the styles for a color scheme
func NewStyles(colors config.ColorScheme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.Title)).
			Padding(0, 1),
		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.Subtle)),
		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colors.ColumnBorder)).
			Padding(0, 1),
		ColumnTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.Accent)),
		DropTarget: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(colors.DropTarget)).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(colors.CardBorder)).
			Foreground(lipgloss.Color(colors.Normal)).
			Padding(0, 1),
		SelectedCard: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(colors.SelectedBorder)).
			Foreground(lipgloss.Color(colors.Normal)).
			Padding(0, 1),
		PendingCard: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(colors.Pending)).
			Foreground(lipgloss.Color(colors.Pending)).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colors.Accent)).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.Title)),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.Accent)),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.InfoFg)),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.ErrorFg)),
		Delete: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.Delete)),
	}
}
