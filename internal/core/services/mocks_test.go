package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driven"
)

var (
	_ driven.ConfigStore    = (*mockConfigStore)(nil)
	_ driven.CorpusSource   = (*mockCorpusSource)(nil)
	_ driven.CorpusStore    = (*mockCorpusStore)(nil)
	_ driven.TextNormaliser = (*splitNormaliser)(nil)
)

// mockConfigStore keeps configuration in memory.
type mockConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
	setErr error
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	v, _ := m.Get(key)
	s, _ := v.(string)
	return s
}

func (m *mockConfigStore) GetInt(key string) int {
	v, _ := m.Get(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	v, _ := m.Get(key)
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	v, _ := m.Get(key)
	s, _ := v.([]string)
	return s
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Load() error  { return nil }
func (m *mockConfigStore) Path() string { return "/tmp/replybot/config.toml" }

// mockCorpusSource returns a fixed set or error.
type mockCorpusSource struct {
	set   domain.TrainingSet
	err   error
	loads int
}

func (m *mockCorpusSource) Load(_ context.Context) (domain.TrainingSet, error) {
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	return m.set, nil
}

func (m *mockCorpusSource) Describe() string { return "mock corpus" }

// mockCorpusStore keeps a replaced set in memory.
type mockCorpusStore struct {
	set        domain.TrainingSet
	replaceErr error
}

func (m *mockCorpusStore) Load(_ context.Context) (domain.TrainingSet, error) {
	return m.set, nil
}

func (m *mockCorpusStore) Describe() string { return "mock store" }

func (m *mockCorpusStore) Replace(_ context.Context, set domain.TrainingSet) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.set = append(domain.TrainingSet(nil), set...)
	return nil
}

func (m *mockCorpusStore) Count(_ context.Context) (int, error) {
	return len(m.set), nil
}

// splitNormaliser lowercases and splits on whitespace. It panics when it
// meets the trigger text, standing in for a pipeline fault.
type splitNormaliser struct {
	trigger string
}

func (n *splitNormaliser) Normalise(text string) []string {
	if n.trigger != "" && text == n.trigger {
		panic("normaliser fault")
	}
	return strings.Fields(strings.ToLower(text))
}

func (n *splitNormaliser) Language() string { return "test" }

var errMock = errors.New("mock failure")

// greetingSet is the three-record corpus used across the service tests.
func greetingSet() domain.TrainingSet {
	return domain.TrainingSet{
		{Query: "hello", Response: "greeting"},
		{Query: "hi there", Response: "greeting"},
		{Query: "bye", Response: "farewell"},
	}
}
