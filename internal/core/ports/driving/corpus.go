package driving

import (
	"context"

	"github.com/custodia-labs/replybot/internal/core/domain"
)

// CorpusService manages the training corpus.
type CorpusService interface {
	// Load reads the configured corpus source.
	Load(ctx context.Context) (domain.TrainingSet, error)

	// Import replaces the stored corpus with the given records.
	// Returns the number of records stored.
	Import(ctx context.Context, set domain.TrainingSet) (int, error)

	// Stats summarises the configured corpus source.
	Stats(ctx context.Context) (*domain.CorpusStats, error)
}
