package httpapi

import "errors"

var (
	// ErrMissingChatService is returned when NewServer is called without a chat service.
	ErrMissingChatService = errors.New("httpapi: chat service is required")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("httpapi: server already started")
)
