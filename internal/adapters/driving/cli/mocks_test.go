package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driving"
	"github.com/custodia-labs/replybot/internal/logger"
)

var (
	_ driving.ChatService   = (*mockChatService)(nil)
	_ driving.CorpusService = (*mockCorpusService)(nil)
)

// mockChatService answers from a fixed table; unknown queries get "unknown".
type mockChatService struct {
	answers map[string]string
	errs    map[string]error
	asked   []string
}

func (m *mockChatService) Answer(_ context.Context, req domain.AnswerRequest) (*domain.Answer, error) {
	if req.Query == nil {
		return nil, domain.ErrValidation
	}
	q := *req.Query
	m.asked = append(m.asked, q)
	if err, ok := m.errs[q]; ok {
		return nil, err
	}
	label, ok := m.answers[q]
	if !ok {
		label = "unknown"
	}
	return &domain.Answer{ID: "id-" + q, Query: q, Label: label}, nil
}

func (m *mockChatService) Labels() []string {
	return []string{"farewell", "greeting"}
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

const greetingCorpus = `query,response
hello,greeting
hi there,greeting
good morning,greeting
bye,farewell
see you later,farewell
`

// setupTestServices points the CLI at a fresh configuration directory and
// restores every package-level service, flag and writer afterwards.
func setupTestServices(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	configDir = dir

	t.Cleanup(func() {
		_ = closeStore()
		settingsService = nil
		configDir = ""
		corpusPath = ""
		verbose = false
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)

		for _, f := range []struct {
			set   func(name, value string) error
			name  string
			value string
		}{
			{askCmd.Flags().Set, "json", "false"},
			{chatCmd.Flags().Set, "plain", "false"},
			{serveCmd.Flags().Set, "addr", ""},
			{corpusStatsCmd.Flags().Set, "json", "false"},
			{mcpServeCmd.Flags().Set, "port", "0"},
		} {
			require.NoError(t, f.set(f.name, f.value))
		}

		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})
	return dir
}

// writeCorpus writes content as a CSV corpus under dir.
func writeCorpus(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "train_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// execute runs the root command with args, returning stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeContext(context.Background(), t, args...)
}

func executeContext(ctx context.Context, t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	err := ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}
