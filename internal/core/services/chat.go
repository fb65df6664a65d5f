package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driving"
	"github.com/custodia-labs/replybot/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService answers queries against a trained pipeline.
type ChatService struct {
	pipeline *Pipeline
	newID    func() string
}

// NewChatService creates a chat service over a trained pipeline.
// Passing a pipeline that did not come from Train panics.
func NewChatService(pipeline *Pipeline) *ChatService {
	pipeline.mustBeTrained()
	return &ChatService{
		pipeline: pipeline,
		newID:    uuid.NewString,
	}
}

// Answer predicts the response label for req.
func (s *ChatService) Answer(_ context.Context, req domain.AnswerRequest) (*domain.Answer, error) {
	if req.Query == nil {
		return nil, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}
	query := *req.Query
	if !utf8.ValidString(query) {
		return nil, fmt.Errorf("%w: query must be text", domain.ErrValidation)
	}

	id := s.newID()
	logger.Debug("Answering %s: %q", id, query)

	label, err := s.predict(id, query)
	if err != nil {
		return nil, err
	}

	logger.Debug("Answered %s: %q", id, label)
	return &domain.Answer{ID: id, Query: query, Label: label}, nil
}

// Labels returns every label the pipeline can predict.
func (s *ChatService) Labels() []string {
	return s.pipeline.Labels()
}

// Model describes the trained pipeline backing the service.
func (s *ChatService) Model() domain.ModelInfo {
	return s.pipeline.Info()
}

// predict converts any panic in the pipeline into ErrInternal. The cause is
// logged against the answer ID and never returned to the caller.
func (s *ChatService) predict(id, query string) (label string, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("answer %s failed: %v", id, r)
			label = ""
			err = fmt.Errorf("%w: answer %s failed", domain.ErrInternal, id)
		}
	}()
	return s.pipeline.Predict(query), nil
}
