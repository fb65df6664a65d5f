package httpapi

import (
	"context"
	"sync"

	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driving"
)

var _ driving.ChatService = (*mockChatService)(nil)

// mockChatService records requests and returns a canned answer or error.
type mockChatService struct {
	mu       sync.Mutex
	label    string
	err      error
	labels   []string
	model    domain.ModelInfo
	requests []domain.AnswerRequest
}

func (m *mockChatService) Answer(_ context.Context, req domain.AnswerRequest) (*domain.Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if req.Query == nil {
		return nil, domain.ErrValidation
	}
	return &domain.Answer{ID: "answer-1", Query: *req.Query, Label: m.label}, nil
}

func (m *mockChatService) Labels() []string {
	return m.labels
}

func (m *mockChatService) Model() domain.ModelInfo {
	info := m.model
	info.Labels = m.labels
	return info
}
