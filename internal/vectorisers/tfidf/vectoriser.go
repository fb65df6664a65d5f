package tfidf

import (
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/replybot/internal/core/domain"
)

// Norm selects the scaling applied to each vector after weighting.
type Norm int

const (
	// NormNone keeps raw term frequency times IDF.
	NormNone Norm = iota
	// NormL2 scales each vector to unit Euclidean length.
	NormL2
)

// ParseNorm converts a configured norm name.
func ParseNorm(n domain.VectorNorm) (Norm, error) {
	switch n {
	case domain.VectorNormNone, "":
		return NormNone, nil
	case domain.VectorNormL2:
		return NormL2, nil
	default:
		return NormNone, fmt.Errorf("%w: vector norm %q", domain.ErrUnsupportedType, n)
	}
}

// Option configures Fit.
type Option func(*Vectoriser)

// WithNorm sets the vector norm.
func WithNorm(n Norm) Option {
	return func(v *Vectoriser) {
		v.norm = n
	}
}

// Vectoriser holds the vocabulary and IDF weights learnt by Fit.
type Vectoriser struct {
	vocabulary map[string]int
	terms      []string
	idf        []float64
	norm       Norm
	documents  int
}

// Fit scans every training document, assigns each distinct term an index in
// lexical order and computes its IDF weight.
// Zero documents fail with domain.ErrInsufficientData.
func Fit(documents [][]string, opts ...Option) (*Vectoriser, error) {
	if len(documents) == 0 {
		return nil, fmt.Errorf("%w: no training documents", domain.ErrInsufficientData)
	}

	docFrequencies := make(map[string]int)
	for _, doc := range documents {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				docFrequencies[term]++
				seen[term] = true
			}
		}
	}

	terms := make([]string, 0, len(docFrequencies))
	for term := range docFrequencies {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := &Vectoriser{
		vocabulary: make(map[string]int, len(terms)),
		terms:      terms,
		idf:        make([]float64, len(terms)),
		documents:  len(documents),
	}
	n := float64(len(documents))
	for i, term := range terms {
		v.vocabulary[term] = i
		df := float64(docFrequencies[term])
		v.idf[i] = math.Log((1+n)/(1+df)) + 1
	}

	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Transform converts normalised terms into a feature vector.
// Out-of-vocabulary terms are dropped; an input with no known terms yields
// an empty vector.
func (v *Vectoriser) Transform(terms []string) domain.FeatureVector {
	vec := make(domain.FeatureVector)
	for _, term := range terms {
		if i, ok := v.vocabulary[term]; ok {
			vec[i]++
		}
	}
	for i, count := range vec {
		vec[i] = count * v.idf[i]
	}

	if v.norm == NormL2 {
		var sumSquares float64
		for _, w := range vec {
			sumSquares += w * w
		}
		if sumSquares > 0 {
			length := math.Sqrt(sumSquares)
			for i := range vec {
				vec[i] /= length
			}
		}
	}
	return vec
}

// Size returns the number of vocabulary terms.
func (v *Vectoriser) Size() int {
	return len(v.terms)
}

// Documents returns the number of documents Fit saw.
func (v *Vectoriser) Documents() int {
	return v.documents
}

// Index returns the vocabulary index of term.
func (v *Vectoriser) Index(term string) (int, bool) {
	i, ok := v.vocabulary[term]
	return i, ok
}

// Terms returns a copy of the vocabulary in index order.
func (v *Vectoriser) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// IDF returns the weight of the term at index i.
func (v *Vectoriser) IDF(i int) float64 {
	return v.idf[i]
}

// Norm returns the configured vector norm.
func (v *Vectoriser) Norm() Norm {
	return v.norm
}
