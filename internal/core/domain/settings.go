package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// CorpusSourceType identifies where the training corpus is read from.
type CorpusSourceType string

// Available corpus sources.
const (
	// CorpusSourceCSV reads a CSV file with a header row.
	CorpusSourceCSV CorpusSourceType = "csv"

	// CorpusSourceSQLite reads records previously imported into the local store.
	CorpusSourceSQLite CorpusSourceType = "sqlite"
)

// IsValid returns true if the corpus source is recognised.
func (t CorpusSourceType) IsValid() bool {
	switch t {
	case CorpusSourceCSV, CorpusSourceSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t CorpusSourceType) String() string {
	return string(t)
}

// Description returns a human-readable description of the source.
func (t CorpusSourceType) Description() string {
	switch t {
	case CorpusSourceCSV:
		return "CSV file (query,response with header)"
	case CorpusSourceSQLite:
		return "Imported corpus in the local SQLite store"
	default:
		return unknownDescription
	}
}

// VectorNorm selects how TF-IDF vectors are scaled after weighting.
type VectorNorm string

// Available norms.
const (
	// VectorNormNone keeps raw term frequency times IDF.
	VectorNormNone VectorNorm = "none"

	// VectorNormL2 scales every vector to unit Euclidean length.
	VectorNormL2 VectorNorm = "l2"
)

// IsValid returns true if the norm is recognised.
func (n VectorNorm) IsValid() bool {
	return n == VectorNormNone || n == VectorNormL2
}

// String returns the string representation.
func (n VectorNorm) String() string {
	return string(n)
}

// ServerSettings configures the HTTP transport.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// AllowedOrigins lists the origins granted CORS access.
	AllowedOrigins []string

	// RateLimit is the sustained request rate per second. Zero disables limiting.
	RateLimit float64

	// Burst is the token bucket size used when RateLimit is positive.
	Burst int
}

// CorpusSettings configures where training data comes from.
type CorpusSettings struct {
	// Source selects the corpus source.
	Source CorpusSourceType

	// Path is the CSV file read when Source is csv.
	Path string
}

// AnalysisSettings configures text normalisation.
type AnalysisSettings struct {
	// Language selects the stopword set and casing rules.
	Language string

	// MinTermLength drops terms with fewer runes.
	MinTermLength int
}

// VectoriserSettings configures TF-IDF weighting.
type VectoriserSettings struct {
	// Norm is applied to every vector after weighting.
	Norm VectorNorm
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Server holds HTTP transport settings.
	Server ServerSettings

	// Corpus holds training data settings.
	Corpus CorpusSettings

	// Analysis holds text normalisation settings.
	Analysis AnalysisSettings

	// Vectoriser holds TF-IDF settings.
	Vectoriser VectoriserSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Server: ServerSettings{
			Addr:           "0.0.0.0:8000",
			AllowedOrigins: []string{"http://localhost:3000"},
			RateLimit:      0,
			Burst:          10,
		},
		Corpus: CorpusSettings{
			Source: CorpusSourceCSV,
			Path:   "train_data.csv",
		},
		Analysis: AnalysisSettings{
			Language:      "english",
			MinTermLength: 1,
		},
		Vectoriser: VectoriserSettings{
			Norm: VectorNormNone,
		},
	}
}

// Validate checks every section, returning ErrInvalidInput on the first problem.
func (s AppSettings) Validate() error {
	if strings.TrimSpace(s.Server.Addr) == "" {
		return fmt.Errorf("%w: server address is required", ErrInvalidInput)
	}
	if s.Server.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidInput)
	}
	if s.Server.RateLimit > 0 && s.Server.Burst < 1 {
		return fmt.Errorf("%w: burst must be at least 1 when rate limiting", ErrInvalidInput)
	}
	if !s.Corpus.Source.IsValid() {
		return fmt.Errorf("%w: corpus source %q, want one of %s",
			ErrInvalidInput, s.Corpus.Source, joinValues(AllCorpusSources()))
	}
	if s.Corpus.Source == CorpusSourceCSV && strings.TrimSpace(s.Corpus.Path) == "" {
		return fmt.Errorf("%w: corpus path is required for csv source", ErrInvalidInput)
	}
	if strings.TrimSpace(s.Analysis.Language) == "" {
		return fmt.Errorf("%w: analysis language is required", ErrInvalidInput)
	}
	if s.Analysis.MinTermLength < 1 {
		return fmt.Errorf("%w: minimum term length must be at least 1", ErrInvalidInput)
	}
	if !s.Vectoriser.Norm.IsValid() {
		return fmt.Errorf("%w: vectoriser norm %q, want one of %s",
			ErrInvalidInput, s.Vectoriser.Norm, joinValues(AllVectorNorms()))
	}
	return nil
}

// AllCorpusSources returns all available corpus sources.
func AllCorpusSources() []CorpusSourceType {
	return []CorpusSourceType{
		CorpusSourceCSV,
		CorpusSourceSQLite,
	}
}

// AllVectorNorms returns all available vector norms.
func AllVectorNorms() []VectorNorm {
	return []VectorNorm{
		VectorNormNone,
		VectorNormL2,
	}
}

func joinValues[T ~string](values []T) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return strings.Join(out, ", ")
}
