package tui

import (
	"context"

	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driving"
)

var _ driving.ChatService = (*MockChatService)(nil)

// MockChatService answers every query with a fixed label or error.
type MockChatService struct {
	Label   string
	Err     error
	Queries []string
}

func (m *MockChatService) Answer(_ context.Context, req domain.AnswerRequest) (*domain.Answer, error) {
	m.Queries = append(m.Queries, *req.Query)
	if m.Err != nil {
		return nil, m.Err
	}
	return &domain.Answer{ID: "id", Query: *req.Query, Label: m.Label}, nil
}

func (m *MockChatService) Labels() []string {
	return []string{"farewell", "greeting"}
}

func (m *MockChatService) Model() domain.ModelInfo {
	return domain.ModelInfo{Labels: m.Labels(), Norm: domain.VectorNormNone}
}
