// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/replybot/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/replybot/internal/adapters/driving/tui/styles"
)

// State represents the current chat state for display.
type State string

const (
	StateReady    State = "ready"
	StateThinking State = "thinking"
	StateError    State = "error"
)

// Bar displays chat status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	labels  int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateThinking:
		return b.styles.Muted.Render("Thinking...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render(fmt.Sprintf("Error: %s", b.message))
		}
		return b.styles.Error.Render("Error")
	default:
		return b.styles.Normal.Render(fmt.Sprintf("%d labels", b.labels))
	}
}

func (b *Bar) renderRight() string {
	bindings := b.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetError switches to the error state with message.
func (b *Bar) SetError(message string) {
	b.state = StateError
	b.message = message
}

// Message returns the current error message.
func (b *Bar) Message() string {
	return b.message
}

// SetLabels sets the number of labels the bot knows.
func (b *Bar) SetLabels(n int) {
	b.labels = n
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}

// Clear resets the status bar to the ready state.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
}
