package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for replybot resources.
	uriScheme = "replybot://"

	labelsURI      = uriScheme + "labels"
	modelURI       = uriScheme + "model"
	corpusStatsURI = uriScheme + "corpus/stats"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.sdk.AddResource(&mcp.Resource{
		URI:         labelsURI,
		Name:        "labels",
		Description: "Every response label the chatbot can return",
		MIMEType:    "application/json",
	}, s.handleLabelsResource)

	s.sdk.AddResource(&mcp.Resource{
		URI:         modelURI,
		Name:        "model",
		Description: "Vocabulary size, vector norm and training time of the trained pipeline",
		MIMEType:    "application/json",
	}, s.handleModelResource)

	if s.ports.Corpus != nil {
		s.sdk.AddResource(&mcp.Resource{
			URI:         corpusStatsURI,
			Name:        "corpus-stats",
			Description: "Record and per-label counts of the training corpus",
			MIMEType:    "application/json",
		}, s.handleCorpusStatsResource)
	}
}

// handleLabelsResource returns the trained labels as a JSON array.
func (s *Server) handleLabelsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	labels := s.ports.Chat.Labels()
	if labels == nil {
		labels = []string{}
	}
	return jsonResource(req.Params.URI, labels)
}

// handleModelResource describes the trained pipeline.
func (s *Server) handleModelResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Chat.Model())
}

// handleCorpusStatsResource returns the corpus summary.
func (s *Server) handleCorpusStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Corpus == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	stats, err := s.ports.Corpus.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading corpus stats: %w", err)
	}
	return jsonResource(req.Params.URI, stats)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
