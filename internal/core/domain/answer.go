package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AnswerRequest is an inbound query as decoded by a transport.
// A nil Query means the caller did not send one.
type AnswerRequest struct {
	Query *string `json:"query"`
}

// NewAnswerRequest wraps a query string in a request.
func NewAnswerRequest(query string) AnswerRequest {
	return AnswerRequest{Query: &query}
}

// Answer is the result of answering one query.
type Answer struct {
	// ID correlates the answer with log lines and transport responses.
	ID string `json:"id"`

	// Query is the text that was answered.
	Query string `json:"query"`

	// Label is the predicted canned response.
	Label string `json:"response"`
}

// ParseAnswerRequest decodes a JSON request body of the form {"query": "..."}.
// Malformed JSON, a non-object body, or a query that is not a JSON string
// fail with ErrValidation. An absent query yields a request with a nil Query.
func ParseAnswerRequest(body []byte) (AnswerRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return AnswerRequest{}, fmt.Errorf("%w: request body must be a JSON object", ErrValidation)
	}
	if fields == nil {
		return AnswerRequest{}, fmt.Errorf("%w: request body must be a JSON object", ErrValidation)
	}

	raw, ok := fields["query"]
	if !ok {
		return AnswerRequest{}, nil
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return AnswerRequest{}, fmt.Errorf("%w: query must be text", ErrValidation)
	}

	var query string
	if err := json.Unmarshal(raw, &query); err != nil {
		return AnswerRequest{}, fmt.Errorf("%w: query must be text", ErrValidation)
	}
	return NewAnswerRequest(query), nil
}
