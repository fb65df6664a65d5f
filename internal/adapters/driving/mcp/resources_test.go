package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/replybot/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleLabelsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns labels", func(t *testing.T) {
		server, err := NewServer(&Ports{Chat: &mockChatService{labels: []string{"farewell", "greeting"}}})
		require.NoError(t, err)

		result, err := server.handleLabelsResource(ctx, readRequest(labelsURI))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, labelsURI, result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.JSONEq(t, `["farewell","greeting"]`, result.Contents[0].Text)
	})

	t.Run("nil labels render as empty array", func(t *testing.T) {
		server, err := NewServer(&Ports{Chat: &mockChatService{}})
		require.NoError(t, err)

		result, err := server.handleLabelsResource(ctx, readRequest(labelsURI))

		require.NoError(t, err)
		assert.JSONEq(t, `[]`, result.Contents[0].Text)
	})
}

func TestServer_handleCorpusStatsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stats", func(t *testing.T) {
		corpus := &mockCorpusService{stats: &domain.CorpusStats{
			Records: 3,
			Labels: []domain.LabelCount{
				{Label: "farewell", Count: 1},
				{Label: "greeting", Count: 2},
			},
		}}
		server, err := NewServer(&Ports{Chat: &mockChatService{}, Corpus: corpus})
		require.NoError(t, err)

		result, err := server.handleCorpusStatsResource(ctx, readRequest(corpusStatsURI))

		require.NoError(t, err)
		assert.JSONEq(t,
			`{"records":3,"labels":[{"label":"farewell","count":1},{"label":"greeting","count":2}]}`,
			result.Contents[0].Text)
	})

	t.Run("no corpus service", func(t *testing.T) {
		server, err := NewServer(&Ports{Chat: &mockChatService{}})
		require.NoError(t, err)

		_, err = server.handleCorpusStatsResource(ctx, readRequest(corpusStatsURI))

		assert.Error(t, err)
	})

	t.Run("service error", func(t *testing.T) {
		corpus := &mockCorpusService{err: errors.New("disk gone")}
		server, err := NewServer(&Ports{Chat: &mockChatService{}, Corpus: corpus})
		require.NoError(t, err)

		_, err = server.handleCorpusStatsResource(ctx, readRequest(corpusStatsURI))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk gone")
	})
}

func TestServer_handleModelResource(t *testing.T) {
	server, err := NewServer(&Ports{Chat: &mockChatService{labels: []string{"farewell", "greeting"}}})
	require.NoError(t, err)

	result, err := server.handleModelResource(context.Background(), readRequest(modelURI))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, modelURI, result.Contents[0].URI)

	var info domain.ModelInfo
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &info))
	assert.Equal(t, []string{"farewell", "greeting"}, info.Labels)
	assert.Equal(t, domain.VectorNormNone, info.Norm)
}
