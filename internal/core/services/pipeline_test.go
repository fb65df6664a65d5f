package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/normalisers/text"
)

func englishNormaliser(t *testing.T) *text.Normaliser {
	t.Helper()
	n, err := text.New("english")
	require.NoError(t, err)
	return n
}

func TestTrain_AnswersGreetingCorpus(t *testing.T) {
	for _, norm := range domain.AllVectorNorms() {
		t.Run(norm.String(), func(t *testing.T) {
			p, err := Train(greetingSet(), englishNormaliser(t), TrainOptions{Norm: norm})
			require.NoError(t, err)

			assert.Equal(t, "greeting", p.Predict("hello there"))
			assert.Equal(t, "farewell", p.Predict("bye"))
			assert.Equal(t, "farewell", p.Predict("BYE!"))
		})
	}
}

func TestTrain_UnknownTermsUsePriors(t *testing.T) {
	p, err := Train(greetingSet(), englishNormaliser(t), TrainOptions{})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		assert.Equal(t, "greeting", p.Predict("goodbye"))
	}
	assert.Equal(t, "greeting", p.Predict(""))
	assert.Equal(t, "greeting", p.Predict("the and of"))
}

func TestTrain_Metadata(t *testing.T) {
	p, err := Train(greetingSet(), englishNormaliser(t), TrainOptions{Norm: domain.VectorNormL2})
	require.NoError(t, err)

	assert.Equal(t, []string{"farewell", "greeting"}, p.Labels())
	// "there" is a stopword: hello, hi, bye remain.
	assert.Equal(t, 3, p.VocabularySize())

	info := p.Info()
	assert.Equal(t, []string{"farewell", "greeting"}, info.Labels)
	assert.Equal(t, 3, info.Records)
	assert.Equal(t, 3, info.Vocabulary)
	assert.Equal(t, domain.VectorNormL2, info.Norm)
	assert.False(t, info.TrainedAt.IsZero())

	stats := p.Stats()
	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, []domain.LabelCount{
		{Label: "farewell", Count: 1},
		{Label: "greeting", Count: 2},
	}, stats.Labels)

	stats.Labels[0].Count = 99
	assert.Equal(t, 1, p.Stats().Labels[0].Count)
}

func TestTrain_Errors(t *testing.T) {
	tests := []struct {
		name       string
		set        domain.TrainingSet
		normaliser bool
		opts       TrainOptions
		wantErr    error
	}{
		{
			name:       "nil normaliser",
			set:        greetingSet(),
			normaliser: false,
			wantErr:    domain.ErrInvalidInput,
		},
		{
			name:       "empty set",
			set:        domain.TrainingSet{},
			normaliser: true,
			wantErr:    domain.ErrInsufficientData,
		},
		{
			name:       "single label",
			set:        domain.TrainingSet{{Query: "a", Response: "x"}, {Query: "b", Response: "x"}},
			normaliser: true,
			wantErr:    domain.ErrInsufficientData,
		},
		{
			name:       "blank response",
			set:        domain.TrainingSet{{Query: "a", Response: "x"}, {Query: "b", Response: " "}},
			normaliser: true,
			wantErr:    domain.ErrDataFormat,
		},
		{
			name:       "unknown norm",
			set:        greetingSet(),
			normaliser: true,
			opts:       TrainOptions{Norm: "l1"},
			wantErr:    domain.ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p *Pipeline
			var err error
			if tt.normaliser {
				p, err = Train(tt.set, englishNormaliser(t), tt.opts)
			} else {
				p, err = Train(tt.set, nil, tt.opts)
			}
			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTrain_AllStopwordsStillTrains(t *testing.T) {
	set := domain.TrainingSet{
		{Query: "the", Response: "a"},
		{Query: "and", Response: "b"},
		{Query: "of", Response: "b"},
	}

	p, err := Train(set, englishNormaliser(t), TrainOptions{})
	require.NoError(t, err)

	assert.Equal(t, 0, p.VocabularySize())
	assert.Equal(t, "b", p.Predict("anything"))
}

func TestTrain_Idempotent(t *testing.T) {
	queries := []string{"hello", "hi", "bye", "goodbye", "", "hello bye", "bye hello"}

	first, err := Train(greetingSet(), englishNormaliser(t), TrainOptions{})
	require.NoError(t, err)
	second, err := Train(greetingSet(), englishNormaliser(t), TrainOptions{})
	require.NoError(t, err)

	for _, q := range queries {
		assert.Equal(t, first.Predict(q), second.Predict(q), q)
	}
}

func TestTrain_IndependentPipelines(t *testing.T) {
	other := domain.TrainingSet{
		{Query: "refund please", Response: "billing"},
		{Query: "password reset", Response: "account"},
	}

	greetings, err := Train(greetingSet(), englishNormaliser(t), TrainOptions{})
	require.NoError(t, err)
	support, err := Train(other, englishNormaliser(t), TrainOptions{})
	require.NoError(t, err)

	assert.Equal(t, "farewell", greetings.Predict("bye"))
	assert.Equal(t, "billing", support.Predict("refund"))
	assert.Equal(t, []string{"farewell", "greeting"}, greetings.Labels())
	assert.Equal(t, []string{"account", "billing"}, support.Labels())
}

func TestTrainFromSource(t *testing.T) {
	t.Run("loads and trains", func(t *testing.T) {
		src := &mockCorpusSource{set: greetingSet()}

		p, err := TrainFromSource(context.Background(), src, englishNormaliser(t), TrainOptions{})
		require.NoError(t, err)

		assert.Equal(t, 1, src.loads)
		assert.Equal(t, "greeting", p.Predict("hello"))
	})

	t.Run("source error", func(t *testing.T) {
		src := &mockCorpusSource{err: domain.ErrDataFormat}

		_, err := TrainFromSource(context.Background(), src, englishNormaliser(t), TrainOptions{})

		assert.ErrorIs(t, err, domain.ErrDataFormat)
		assert.Contains(t, err.Error(), "mock corpus")
	})

	t.Run("header only", func(t *testing.T) {
		src := &mockCorpusSource{set: domain.TrainingSet{}}

		_, err := TrainFromSource(context.Background(), src, englishNormaliser(t), TrainOptions{})

		assert.ErrorIs(t, err, domain.ErrInsufficientData)
	})

	t.Run("nil source", func(t *testing.T) {
		_, err := TrainFromSource(context.Background(), nil, englishNormaliser(t), TrainOptions{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestPipeline_ZeroValuePanics(t *testing.T) {
	var p Pipeline

	assert.PanicsWithValue(t, "services: pipeline used before Train", func() {
		p.Predict("hello")
	})
	assert.Panics(t, func() { NewChatService(&Pipeline{}) })
}

func TestPipeline_ConcurrentPredict(t *testing.T) {
	p, err := Train(greetingSet(), englishNormaliser(t), TrainOptions{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				results[i] = p.Predict("hello")
			} else {
				results[i] = p.Predict("bye")
			}
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if i%2 == 0 {
			assert.Equal(t, "greeting", got)
		} else {
			assert.Equal(t, "farewell", got)
		}
	}
}
