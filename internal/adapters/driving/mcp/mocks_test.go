package mcp

import (
	"context"

	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driving"
)

var (
	_ driving.ChatService   = (*mockChatService)(nil)
	_ driving.CorpusService = (*mockCorpusService)(nil)
)

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	label  string
	labels []string
	err    error
	last   domain.AnswerRequest
}

func (m *mockChatService) Answer(_ context.Context, req domain.AnswerRequest) (*domain.Answer, error) {
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Answer{ID: "answer-1", Query: *req.Query, Label: m.label}, nil
}

func (m *mockChatService) Labels() []string {
	return m.labels
}

func (m *mockChatService) Model() domain.ModelInfo {
	return domain.ModelInfo{Labels: m.Labels(), Norm: domain.VectorNormNone}
}

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	stats *domain.CorpusStats
	err   error
}

func (m *mockCorpusService) Load(_ context.Context) (domain.TrainingSet, error) {
	return nil, m.err
}

func (m *mockCorpusService) Import(_ context.Context, set domain.TrainingSet) (int, error) {
	return len(set), m.err
}

func (m *mockCorpusService) Stats(_ context.Context) (*domain.CorpusStats, error) {
	return m.stats, m.err
}
