package csvfile

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.CorpusSource = (*Source)(nil)

const bom = "\ufeff"

// Source reads a TrainingSet from a CSV file on disk.
type Source struct {
	path string
}

// New creates a CSV source for path. The file is not opened until Load.
func New(path string) *Source {
	return &Source{path: path}
}

// Path returns the CSV file path.
func (s *Source) Path() string {
	return s.path
}

// Describe identifies the source in log lines and errors.
func (s *Source) Describe() string {
	return "csv " + s.path
}

// Load reads and validates every row. A header-only file yields an empty set.
func (s *Source) Load(ctx context.Context) (domain.TrainingSet, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataFormat, err)
	}
	defer f.Close()

	return Read(ctx, f)
}

// Read parses CSV corpus data from r.
func Read(ctx context.Context, r io.Reader) (domain.TrainingSet, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && string(head) == bom {
		_, _ = br.Discard(len(bom))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header row", domain.ErrDataFormat)
		}
		return nil, fmt.Errorf("%w: header: %w", domain.ErrDataFormat, err)
	}

	set := domain.TrainingSet{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// csv.ParseError already carries the line number.
			return nil, fmt.Errorf("%w: %w", domain.ErrDataFormat, err)
		}

		line, _ := reader.FieldPos(0)
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: line %d: expected 2 columns, got %d", domain.ErrDataFormat, line, len(row))
		}
		if !utf8.ValidString(row[0]) || !utf8.ValidString(row[1]) {
			return nil, fmt.Errorf("%w: line %d: invalid UTF-8", domain.ErrDataFormat, line)
		}

		record, err := domain.NewTrainingRecord(row[0], row[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		set = append(set, record)
	}

	return set, nil
}
