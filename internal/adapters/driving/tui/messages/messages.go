// Package messages defines Bubbletea message types for the chat TUI.
package messages

import (
	"github.com/custodia-labs/replybot/internal/core/domain"
)

// AnswerRequested is sent when the user submits a query.
type AnswerRequested struct {
	Query string
}

// AnswerCompleted carries the predicted answer, or the error, back to the model.
type AnswerCompleted struct {
	Query  string
	Answer *domain.Answer
	Err    error
}
