package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/replybot/internal/core/domain"
)

// errInternal is the only detail an internal failure exposes to clients.
var errInternal = errors.New("internal error")

// AnswerInput is the input schema for the answer tool.
type AnswerInput struct {
	Query string `json:"query" jsonschema:"the user's question or message"`
}

// AnswerOutput is the output schema for the answer tool.
type AnswerOutput struct {
	Response string `json:"response"`
	ID       string `json:"id"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.sdk, &mcp.Tool{
		Name:        "answer",
		Description: "Return the canned response label the chatbot predicts for a query",
	}, s.handleAnswer)
}

// handleAnswer handles the answer tool invocation. Validation errors are
// returned verbatim; anything else is reported as a generic failure.
func (s *Server) handleAnswer(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnswerInput,
) (*mcp.CallToolResult, AnswerOutput, error) {
	answer, err := s.ports.Chat.Answer(ctx, domain.NewAnswerRequest(input.Query))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, AnswerOutput{}, err
		}
		return nil, AnswerOutput{}, errInternal
	}

	return nil, AnswerOutput{Response: answer.Label, ID: answer.ID}, nil
}
