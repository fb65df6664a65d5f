// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/replybot/internal/adapters/driving/tui/styles"
)

// CharLimit caps the length of a typed query.
const CharLimit = 512

// QueryInput wraps a bubbles textinput for chat queries.
type QueryInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewQueryInput creates a new query input component.
func NewQueryInput(s *styles.Styles) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask something..."
	ti.Focus()
	ti.CharLimit = CharLimit
	ti.Width = 50

	return &QueryInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the query input.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	return q, cmd
}

// View renders the query input.
func (q *QueryInput) View() string {
	prompt := q.styles.Speaker.Render("> ")
	field := q.styles.InputField.Render(q.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, prompt, field)
}

// Value returns the current input value.
func (q *QueryInput) Value() string {
	return q.textinput.Value()
}

// SetValue sets the input value.
func (q *QueryInput) SetValue(value string) {
	q.textinput.SetValue(value)
}

// Focused returns whether the input is focused.
func (q *QueryInput) Focused() bool {
	return q.textinput.Focused()
}

// SetWidth sets the width of the input.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	// Account for prompt, border and padding
	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	q.textinput.Width = inputWidth
}

// Width returns the current width.
func (q *QueryInput) Width() int {
	return q.width
}

// Reset clears the input.
func (q *QueryInput) Reset() {
	q.textinput.Reset()
}
