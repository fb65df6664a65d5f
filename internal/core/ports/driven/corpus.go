package driven

import (
	"context"

	"github.com/custodia-labs/replybot/internal/core/domain"
)

// CorpusSource loads the labelled training set.
type CorpusSource interface {
	// Load returns every record in source order.
	// Malformed sources fail with domain.ErrDataFormat.
	Load(ctx context.Context) (domain.TrainingSet, error)

	// Describe returns a short human-readable location, e.g. a file path.
	Describe() string
}

// CorpusStore persists an imported corpus so it can be trained on later
// without the source CSV file.
type CorpusStore interface {
	CorpusSource

	// Replace atomically swaps the stored corpus for the given records.
	Replace(ctx context.Context, set domain.TrainingSet) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
