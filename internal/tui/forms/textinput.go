package forms

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a single-line text input field
type TextInput struct {
	key   string
	title string
	input textinput.Model
}

// NewTextInput creates a new text input field
func NewTextInput(key, title, placeholder, value string) *TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	if value != "" {
		ti.SetValue(value)
	}

	return &TextInput{
		key:   key,
		title: title,
		input: ti,
	}
}

func (t *TextInput) Update(msg tea.Msg) (Field, tea.Cmd) {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t *TextInput) View() string    { return t.input.View() }
func (t *TextInput) Focus() tea.Cmd  { return t.input.Focus() }
func (t *TextInput) Blur()           { t.input.Blur() }
func (t *TextInput) Focused() bool   { return t.input.Focused() }
func (t *TextInput) Key() string     { return t.key }
func (t *TextInput) Title() string   { return t.title }
func (t *TextInput) Value() string   { return t.input.Value() }
func (t *TextInput) Multiline() bool { return false }
