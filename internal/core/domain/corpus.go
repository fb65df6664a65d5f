package domain

import (
	"fmt"
	"sort"
	"strings"
)

// TrainingRecord is one labelled example from the corpus.
// Both fields are non-empty; records are never modified after loading.
type TrainingRecord struct {
	// Query is the free-text example question.
	Query string `json:"query"`

	// Response is the canned response label predicted for similar queries.
	Response string `json:"response"`
}

// NewTrainingRecord creates a record, rejecting blank fields with ErrDataFormat.
func NewTrainingRecord(query, response string) (TrainingRecord, error) {
	if strings.TrimSpace(query) == "" {
		return TrainingRecord{}, fmt.Errorf("%w: empty query", ErrDataFormat)
	}
	if strings.TrimSpace(response) == "" {
		return TrainingRecord{}, fmt.Errorf("%w: empty response", ErrDataFormat)
	}
	return TrainingRecord{Query: query, Response: response}, nil
}

// Validate checks the record invariants.
func (r TrainingRecord) Validate() error {
	_, err := NewTrainingRecord(r.Query, r.Response)
	return err
}

// TrainingSet is the ordered sequence of records a pipeline is trained on.
// Duplicates and contradictory rows are kept as loaded.
type TrainingSet []TrainingRecord

// Queries returns the query of every record, in order.
func (s TrainingSet) Queries() []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[i].Query
	}
	return out
}

// Responses returns the response label of every record, in order.
func (s TrainingSet) Responses() []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[i].Response
	}
	return out
}

// Labels returns the distinct response labels in lexical order.
func (s TrainingSet) Labels() []string {
	seen := make(map[string]struct{}, len(s))
	labels := make([]string, 0)
	for i := range s {
		if _, ok := seen[s[i].Response]; ok {
			continue
		}
		seen[s[i].Response] = struct{}{}
		labels = append(labels, s[i].Response)
	}
	sort.Strings(labels)
	return labels
}

// Validate checks every record, reporting the first offending position.
func (s TrainingSet) Validate() error {
	for i := range s {
		if err := s[i].Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return nil
}

// LabelCount is the number of records carrying one label.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CorpusStats summarises a training set.
type CorpusStats struct {
	// Records is the total number of records.
	Records int `json:"records"`

	// Labels holds per-label counts in lexical label order.
	Labels []LabelCount `json:"labels"`
}

// Stats computes record and per-label counts.
func (s TrainingSet) Stats() CorpusStats {
	counts := make(map[string]int)
	for i := range s {
		counts[s[i].Response]++
	}

	labels := s.Labels()
	stats := CorpusStats{
		Records: len(s),
		Labels:  make([]LabelCount, len(labels)),
	}
	for i, label := range labels {
		stats.Labels[i] = LabelCount{Label: label, Count: counts[label]}
	}
	return stats
}
