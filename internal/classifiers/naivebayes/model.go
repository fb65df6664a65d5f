package naivebayes

import (
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/replybot/internal/core/domain"
)

// Model is a trained multinomial Naive Bayes classifier.
type Model struct {
	labels         []string
	logPriors      []float64
	logLikelihoods [][]float64 // [label][term]
	vocabularySize int
}

// Fit trains a model over feature vectors and their labels.
// No documents, or fewer than two distinct labels, fail with
// domain.ErrInsufficientData. Mismatched lengths, empty labels and indices
// outside the vocabulary fail with domain.ErrInvalidInput.
func Fit(vectors []domain.FeatureVector, labels []string, vocabularySize int) (*Model, error) {
	if len(vectors) != len(labels) {
		return nil, fmt.Errorf("%w: %d vectors but %d labels", domain.ErrInvalidInput, len(vectors), len(labels))
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: no training documents", domain.ErrInsufficientData)
	}
	if vocabularySize < 0 {
		return nil, fmt.Errorf("%w: negative vocabulary size", domain.ErrInvalidInput)
	}

	classCounts := make(map[string]int)
	for _, label := range labels {
		if label == "" {
			return nil, fmt.Errorf("%w: empty label", domain.ErrInvalidInput)
		}
		classCounts[label]++
	}
	if len(classCounts) < 2 {
		return nil, fmt.Errorf("%w: need at least two distinct labels, got %d",
			domain.ErrInsufficientData, len(classCounts))
	}

	classNames := make([]string, 0, len(classCounts))
	for label := range classCounts {
		classNames = append(classNames, label)
	}
	sort.Strings(classNames)

	classIndex := make(map[string]int, len(classNames))
	for i, label := range classNames {
		classIndex[label] = i
	}

	// Sum term weights per class.
	termWeights := make([][]float64, len(classNames))
	classTotals := make([]float64, len(classNames))
	for i := range termWeights {
		termWeights[i] = make([]float64, vocabularySize)
	}
	for doc, vec := range vectors {
		c := classIndex[labels[doc]]
		for term, w := range vec {
			if term < 0 || term >= vocabularySize {
				return nil, fmt.Errorf("%w: document %d has term index %d outside vocabulary of %d",
					domain.ErrInvalidInput, doc, term, vocabularySize)
			}
			termWeights[c][term] += w
			classTotals[c] += w
		}
	}

	m := &Model{
		labels:         classNames,
		logPriors:      make([]float64, len(classNames)),
		logLikelihoods: make([][]float64, len(classNames)),
		vocabularySize: vocabularySize,
	}
	total := float64(len(vectors))
	for c, label := range classNames {
		m.logPriors[c] = math.Log(float64(classCounts[label]) / total)

		denominator := classTotals[c] + float64(vocabularySize)
		m.logLikelihoods[c] = make([]float64, vocabularySize)
		for term := 0; term < vocabularySize; term++ {
			m.logLikelihoods[c][term] = math.Log((termWeights[c][term] + 1) / denominator)
		}
	}
	return m, nil
}

// Predict returns the highest scoring label. An empty vector is scored on
// priors alone. Calling Predict on a model not built by Fit panics.
func (m *Model) Predict(vec domain.FeatureVector) string {
	scores := m.Scores(vec)

	best := 0
	for c := 1; c < len(scores); c++ {
		if scores[c] > scores[best] {
			best = c
		}
	}
	return m.labels[best]
}

// Scores returns the joint log-likelihood of vec under every label, in
// Labels order. Terms outside the vocabulary are ignored.
func (m *Model) Scores(vec domain.FeatureVector) []float64 {
	m.mustBeTrained()

	// Sum in index order so repeated calls round identically.
	terms := make([]int, 0, len(vec))
	for term := range vec {
		if term >= 0 && term < m.vocabularySize {
			terms = append(terms, term)
		}
	}
	sort.Ints(terms)

	scores := make([]float64, len(m.labels))
	copy(scores, m.logPriors)
	for _, term := range terms {
		w := vec[term]
		for c := range scores {
			scores[c] += w * m.logLikelihoods[c][term]
		}
	}
	return scores
}

// Labels returns a copy of the known labels in lexical order.
func (m *Model) Labels() []string {
	m.mustBeTrained()
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// LogPrior returns the log-prior of label.
func (m *Model) LogPrior(label string) (float64, bool) {
	m.mustBeTrained()
	i := sort.SearchStrings(m.labels, label)
	if i == len(m.labels) || m.labels[i] != label {
		return 0, false
	}
	return m.logPriors[i], true
}

// LogLikelihood returns the smoothed log-likelihood of the term at index
// under label.
func (m *Model) LogLikelihood(label string, term int) (float64, bool) {
	m.mustBeTrained()
	i := sort.SearchStrings(m.labels, label)
	if i == len(m.labels) || m.labels[i] != label || term < 0 || term >= m.vocabularySize {
		return 0, false
	}
	return m.logLikelihoods[i][term], true
}

// VocabularySize returns the number of terms the model was trained over.
func (m *Model) VocabularySize() int {
	return m.vocabularySize
}

func (m *Model) mustBeTrained() {
	if m == nil || len(m.labels) == 0 {
		panic("naivebayes: model used before Fit")
	}
}
