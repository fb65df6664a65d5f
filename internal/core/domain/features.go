package domain

import "time"

// FeatureVector is a sparse document representation: vocabulary index to
// non-negative TF-IDF weight. Indices absent from the map have weight zero.
// Vectors are built per document and never shared between requests.
type FeatureVector map[int]float64

// Empty reports whether the vector has no non-zero entries.
func (v FeatureVector) Empty() bool {
	return len(v) == 0
}

// ModelInfo describes a trained pipeline.
type ModelInfo struct {
	// Labels holds every predictable label in lexical order.
	Labels []string `json:"labels"`

	// Records is the number of training records.
	Records int `json:"records"`

	// Vocabulary is the number of distinct terms.
	Vocabulary int `json:"vocabulary"`

	// Norm is the vector norm in use.
	Norm VectorNorm `json:"norm"`

	// TrainedAt is when training completed.
	TrainedAt time.Time `json:"trained_at"`
}
