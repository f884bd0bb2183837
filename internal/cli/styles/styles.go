// Package styles renders cards for the CLI show command
package styles

import (
	"charm.land/lipgloss/v2"

	"github.com/juanbolano/mini-trello/internal/config"
)

// CardWidth is the outer width of a printed card
const CardWidth = 80

var (
	CardStyle     lipgloss.Style
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style
	ValueStyle    lipgloss.Style
	SectionStyle  lipgloss.Style
	PendingStyle  lipgloss.Style
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init rebuilds the styles from a color scheme
func Init(colors config.ColorScheme) {
	fg := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.CardBorder)).
		Padding(1, 2).
		Width(CardWidth)
	TitleStyle = fg(colors.Title).Bold(true)
	SubtitleStyle = fg(colors.Subtle)
	LabelStyle = fg(colors.Accent).Bold(true)
	ValueStyle = fg(colors.Normal)
	SectionStyle = fg(colors.Accent).Bold(true).MarginTop(1)
	PendingStyle = fg(colors.Pending).Bold(true).Padding(0, 1)
}

// Field renders "label value" on one line, muting the value when subtle is set
func Field(label, value string, subtle bool) string {
	v := ValueStyle
	if subtle {
		v = SubtitleStyle
	}
	return LabelStyle.Render(label) + " " + v.Render(value) + "\n"
}

// RenderCard wraps content in the card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
