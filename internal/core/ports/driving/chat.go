package driving

import (
	"context"

	"github.com/custodia-labs/replybot/internal/core/domain"
)

// ChatService answers free-text queries with a predicted response label.
// Implementations are backed by a trained, immutable pipeline and are safe
// for concurrent use.
type ChatService interface {
	// Answer predicts the response label for a query.
	// A missing or non-text query fails with domain.ErrValidation before the
	// pipeline runs; unexpected failures surface as domain.ErrInternal.
	Answer(ctx context.Context, req domain.AnswerRequest) (*domain.Answer, error)

	// Labels returns every label the pipeline can predict, in lexical order.
	Labels() []string

	// Model describes the trained pipeline: labels, vocabulary size, norm
	// and training time.
	Model() domain.ModelInfo
}
