// Package mcp provides an MCP (Model Context Protocol) server adapter for replybot.
// It lets AI assistants ask the trained chatbot for canned responses.
package mcp

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")
