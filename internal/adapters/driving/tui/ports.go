// Package tui provides an interactive terminal chat for replybot.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/replybot/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Chat answers queries.
	Chat driving.ChatService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
