package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/replybot/internal/classifiers/naivebayes"
	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driven"
	"github.com/custodia-labs/replybot/internal/logger"
	"github.com/custodia-labs/replybot/internal/vectorisers/tfidf"
)

// TrainOptions tunes the vectoriser during training.
type TrainOptions struct {
	// Norm is applied to every feature vector.
	Norm domain.VectorNorm
}

// Pipeline is a trained normaliser, vectoriser and classifier.
// It can only be obtained from Train, is never mutated afterwards and is
// safe for concurrent use.
type Pipeline struct {
	normaliser driven.TextNormaliser
	vectoriser *tfidf.Vectoriser
	model      *naivebayes.Model
	stats      domain.CorpusStats
	trainedAt  time.Time
}

// Train fits the vectoriser and classifier over set.
// An empty or single-label set fails with domain.ErrInsufficientData;
// a set with blank fields fails with domain.ErrDataFormat.
func Train(set domain.TrainingSet, normaliser driven.TextNormaliser, opts TrainOptions) (*Pipeline, error) {
	logger.Section("Training")

	if normaliser == nil {
		return nil, fmt.Errorf("%w: normaliser is required", domain.ErrInvalidInput)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: training set is empty", domain.ErrInsufficientData)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}

	norm, err := tfidf.ParseNorm(opts.Norm)
	if err != nil {
		return nil, err
	}

	queries := set.Queries()
	documents := make([][]string, len(queries))
	for i, q := range queries {
		documents[i] = normaliser.Normalise(q)
	}

	vectoriser, err := tfidf.Fit(documents, tfidf.WithNorm(norm))
	if err != nil {
		return nil, fmt.Errorf("fitting vectoriser: %w", err)
	}
	if vectoriser.Size() == 0 {
		logger.Warn("Vocabulary is empty; every prediction will use priors alone")
	}

	vectors := make([]domain.FeatureVector, len(documents))
	for i, doc := range documents {
		vectors[i] = vectoriser.Transform(doc)
	}

	model, err := naivebayes.Fit(vectors, set.Responses(), vectoriser.Size())
	if err != nil {
		return nil, fmt.Errorf("fitting classifier: %w", err)
	}

	p := &Pipeline{
		normaliser: normaliser,
		vectoriser: vectoriser,
		model:      model,
		stats:      set.Stats(),
		trainedAt:  time.Now(),
	}

	logger.Info("Records: %d", p.stats.Records)
	logger.Info("Labels: %d", len(p.stats.Labels))
	logger.Info("Vocabulary: %d terms over %d documents", vectoriser.Size(), vectoriser.Documents())
	logger.Info("Language: %s, norm: %s", normaliser.Language(), normName(vectoriser.Norm()))
	return p, nil
}

// TrainFromSource loads the corpus from src and trains on it.
func TrainFromSource(
	ctx context.Context, src driven.CorpusSource, normaliser driven.TextNormaliser, opts TrainOptions,
) (*Pipeline, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: corpus source is required", domain.ErrInvalidInput)
	}

	logger.Debug("Loading corpus from %s", src.Describe())
	set, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading corpus from %s: %w", src.Describe(), err)
	}
	return Train(set, normaliser, opts)
}

// Predict runs normalise, transform and predict for one text.
func (p *Pipeline) Predict(text string) string {
	p.mustBeTrained()
	terms := p.normaliser.Normalise(text)
	vec := p.vectoriser.Transform(terms)
	if vec.Empty() {
		logger.Debug("No known terms in %q; using priors", text)
	}
	return p.model.Predict(vec)
}

// Labels returns every label the pipeline can predict, in lexical order.
func (p *Pipeline) Labels() []string {
	p.mustBeTrained()
	return p.model.Labels()
}

// VocabularySize returns the number of known terms.
func (p *Pipeline) VocabularySize() int {
	p.mustBeTrained()
	return p.vectoriser.Size()
}

// Stats returns the summary of the training set.
func (p *Pipeline) Stats() domain.CorpusStats {
	p.mustBeTrained()
	labels := make([]domain.LabelCount, len(p.stats.Labels))
	copy(labels, p.stats.Labels)
	return domain.CorpusStats{Records: p.stats.Records, Labels: labels}
}

// Info describes the trained pipeline.
func (p *Pipeline) Info() domain.ModelInfo {
	p.mustBeTrained()
	return domain.ModelInfo{
		Labels:     p.Labels(),
		Records:    p.stats.Records,
		Vocabulary: p.VocabularySize(),
		Norm:       normName(p.vectoriser.Norm()),
		TrainedAt:  p.trainedAt,
	}
}

func (p *Pipeline) mustBeTrained() {
	if p == nil || p.model == nil || p.vectoriser == nil || p.normaliser == nil {
		panic("services: pipeline used before Train")
	}
}

func normName(n tfidf.Norm) domain.VectorNorm {
	if n == tfidf.NormL2 {
		return domain.VectorNormL2
	}
	return domain.VectorNormNone
}
