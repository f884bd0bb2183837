package forms

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// TextArea is a multi-line text input field
type TextArea struct {
	key      string
	title    string
	textarea textarea.Model
}

// NewTextArea creates a new text area field
func NewTextArea(key, title, placeholder string, width int, value string) *TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = 4000
	ta.SetHeight(6)
	if width > 0 {
		ta.SetWidth(width)
	}
	if value != "" {
		ta.SetValue(value)
	}

	return &TextArea{
		key:      key,
		title:    title,
		textarea: ta,
	}
}

func (t *TextArea) Update(msg tea.Msg) (Field, tea.Cmd) {
	var cmd tea.Cmd
	t.textarea, cmd = t.textarea.Update(msg)
	return t, cmd
}

func (t *TextArea) View() string    { return t.textarea.View() }
func (t *TextArea) Focus() tea.Cmd  { return t.textarea.Focus() }
func (t *TextArea) Blur()           { t.textarea.Blur() }
func (t *TextArea) Focused() bool   { return t.textarea.Focused() }
func (t *TextArea) Key() string     { return t.key }
func (t *TextArea) Title() string   { return t.title }
func (t *TextArea) Value() string   { return t.textarea.Value() }
func (t *TextArea) Multiline() bool { return true }
