// Package forms is a small keyboard-driven form built from bubbles inputs
package forms

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// FormState represents the state of the form
type FormState int

const (
	StateInProgress FormState = iota
	StateCompleted
	StateAborted
)

// Field is the interface that all form fields must implement
type Field interface {
	// Update handles messages and updates the field
	Update(tea.Msg) (Field, tea.Cmd)

	// View renders the input without its title
	View() string

	Focus() tea.Cmd
	Blur()
	Focused() bool

	// Key identifies the field in Values
	Key() string
	Title() string
	Value() string

	// Multiline fields consume enter instead of submitting the form
	Multiline() bool
}

// Form manages a collection of fields.
// Tab cycles focus, the save key or enter on a single-line field submits and
// esc aborts.
type Form struct {
	title        string
	saveKey      string
	fields       []Field
	focusedIndex int
	state        FormState
	err          string

	TitleStyle lipgloss.Style
	LabelStyle lipgloss.Style
	ErrorStyle lipgloss.Style
}

// NewForm creates a new form with the given fields
func NewForm(title, saveKey string, fields ...Field) *Form {
	return &Form{
		title:      title,
		saveKey:    saveKey,
		fields:     fields,
		state:      StateInProgress,
		TitleStyle: lipgloss.NewStyle().Bold(true),
		LabelStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		ErrorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Init focuses the first field
func (f *Form) Init() tea.Cmd {
	if len(f.fields) > 0 {
		return f.fields[0].Focus()
	}
	return nil
}

// Update handles messages for the form
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if f.state != StateInProgress {
		return f, nil
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch key := keyMsg.String(); {
		case key == "esc":
			f.state = StateAborted
			return f, nil

		case key == f.saveKey:
			f.state = StateCompleted
			return f, nil

		case key == "tab", key == "shift+tab":
			return f, f.handleTabNavigation(key == "shift+tab")

		case key == "enter" && len(f.fields) > 0 && !f.fields[f.focusedIndex].Multiline():
			f.state = StateCompleted
			return f, nil
		}
	}

	if f.focusedIndex < len(f.fields) {
		var cmd tea.Cmd
		f.fields[f.focusedIndex], cmd = f.fields[f.focusedIndex].Update(msg)
		return f, cmd
	}

	return f, nil
}

// handleTabNavigation moves focus between fields
func (f *Form) handleTabNavigation(reverse bool) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}

	f.fields[f.focusedIndex].Blur()

	if reverse {
		f.focusedIndex--
		if f.focusedIndex < 0 {
			f.focusedIndex = len(f.fields) - 1
		}
	} else {
		f.focusedIndex++
		if f.focusedIndex >= len(f.fields) {
			f.focusedIndex = 0
		}
	}

	return f.fields[f.focusedIndex].Focus()
}

// View renders the form
func (f *Form) View() string {
	var b strings.Builder
	b.WriteString(f.TitleStyle.Render(f.title))
	b.WriteString("\n\n")
	for _, field := range f.fields {
		b.WriteString(f.LabelStyle.Render(field.Title()))
		b.WriteString("\n")
		b.WriteString(field.View())
		b.WriteString("\n\n")
	}
	if f.err != "" {
		b.WriteString(f.ErrorStyle.Render(f.err))
		b.WriteString("\n\n")
	}
	b.WriteString("tab: next field • " + f.saveKey + ": save • esc: cancel")
	return b.String()
}

// State returns the current form state
func (f *Form) State() FormState {
	return f.state
}

// Reopen puts a submitted form back in progress with an error line,
// used when the submitted values are rejected.
func (f *Form) Reopen(err error) {
	f.state = StateInProgress
	f.err = err.Error()
}

// Value returns the value of the field with the given key
func (f *Form) Value(key string) string {
	for _, field := range f.fields {
		if field.Key() == key {
			return field.Value()
		}
	}
	return ""
}
