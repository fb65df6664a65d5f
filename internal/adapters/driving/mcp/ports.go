package mcp

import (
	"github.com/custodia-labs/replybot/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat answers queries against the trained pipeline.
	Chat driving.ChatService

	// Corpus summarises the training corpus. Optional.
	Corpus driving.CorpusService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
