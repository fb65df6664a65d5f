package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driven"
	"github.com/custodia-labs/replybot/internal/core/ports/driving"
	"github.com/custodia-labs/replybot/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// errNoCorpusStore is returned by Import when no store is configured.
var errNoCorpusStore = errors.New("corpus store not configured")

// CorpusService loads and imports training corpora.
type CorpusService struct {
	source driven.CorpusSource
	store  driven.CorpusStore
}

// NewCorpusService creates a corpus service.
// The store parameter is optional (can be nil) unless Import is used.
func NewCorpusService(source driven.CorpusSource, store driven.CorpusStore) *CorpusService {
	return &CorpusService{
		source: source,
		store:  store,
	}
}

// Load reads the configured corpus source.
func (s *CorpusService) Load(ctx context.Context) (domain.TrainingSet, error) {
	if s.source == nil {
		return nil, fmt.Errorf("%w: corpus source is required", domain.ErrInvalidInput)
	}
	set, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading corpus from %s: %w", s.source.Describe(), err)
	}
	return set, nil
}

// Import replaces the stored corpus with set.
// Empty sets are rejected so a later training run cannot start from nothing.
func (s *CorpusService) Import(ctx context.Context, set domain.TrainingSet) (int, error) {
	if s.store == nil {
		return 0, errNoCorpusStore
	}
	if len(set) == 0 {
		return 0, fmt.Errorf("%w: nothing to import", domain.ErrInsufficientData)
	}
	if err := set.Validate(); err != nil {
		return 0, err
	}

	logger.Debug("Importing %d records into %s", len(set), s.store.Describe())
	if err := s.store.Replace(ctx, set); err != nil {
		return 0, fmt.Errorf("importing corpus: %w", err)
	}
	return s.store.Count(ctx)
}

// Stats summarises the configured corpus source.
func (s *CorpusService) Stats(ctx context.Context) (*domain.CorpusStats, error) {
	set, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	stats := set.Stats()
	return &stats, nil
}
