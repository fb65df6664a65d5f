package text

import (
	"bufio"
	"embed"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.TextNormaliser = (*Normaliser)(nil)

//go:embed stopwords/*.txt
var stopwordFS embed.FS

// languageSpec ties a language name to its casing rules and stopword file.
type languageSpec struct {
	tag       language.Tag
	stopwords string
}

var languages = map[string]languageSpec{
	"english": {tag: language.English, stopwords: "stopwords/english.txt"},
}

var aliases = map[string]string{
	"en": "english",
}

// Option configures a Normaliser.
type Option func(*Normaliser)

// WithMinTermLength drops terms shorter than n runes. Values below 1 are ignored.
func WithMinTermLength(n int) Option {
	return func(nm *Normaliser) {
		if n >= 1 {
			nm.minLength = n
		}
	}
}

// Normaliser lowercases, tokenises and removes stopwords.
// It holds no mutable state after construction and is safe for concurrent use.
type Normaliser struct {
	language  string
	tag       language.Tag
	stopwords map[string]struct{}
	minLength int
}

// New creates a normaliser for the named language.
// Unknown languages fail with domain.ErrUnsupportedType.
func New(lang string, opts ...Option) (*Normaliser, error) {
	name := strings.ToLower(strings.TrimSpace(lang))
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}

	def, ok := languages[name]
	if !ok {
		return nil, fmt.Errorf("%w: language %q, supported: %s",
			domain.ErrUnsupportedType, lang, strings.Join(SupportedLanguages(), ", "))
	}

	stopwords, err := loadStopwords(def.stopwords)
	if err != nil {
		return nil, fmt.Errorf("loading stopwords for %s: %w", name, err)
	}

	n := &Normaliser{
		language:  name,
		tag:       def.tag,
		stopwords: stopwords,
		minLength: 1,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// SupportedLanguages returns the language names New accepts, sorted.
func SupportedLanguages() []string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Language returns the canonical language name.
func (n *Normaliser) Language() string {
	return n.language
}

// IsStopword reports whether term is in the stopword set.
func (n *Normaliser) IsStopword(term string) bool {
	_, ok := n.stopwords[term]
	return ok
}

// Normalise converts text into terms. Punctuation separates terms and is
// never itself a term. The result is empty, never nil, when nothing survives.
func (n *Normaliser) Normalise(text string) []string {
	terms := make([]string, 0)
	if text == "" {
		return terms
	}

	// Casers carry state between calls and must not be shared.
	lowered := cases.Lower(n.tag).String(text)

	state := -1
	remaining := lowered
	var segment string
	for len(remaining) > 0 {
		segment, remaining, state = uniseg.FirstWordInString(remaining, state)
		for _, term := range strings.FieldsFunc(segment, isBoundary) {
			if n.keep(term) {
				terms = append(terms, term)
			}
		}
	}
	return terms
}

func (n *Normaliser) keep(term string) bool {
	if len([]rune(term)) < n.minLength {
		return false
	}
	return !n.IsStopword(term)
}

// isBoundary reports runes that split a word segment into terms.
// Combining marks of every kind stay attached to their base letter.
func isBoundary(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.In(r, unicode.Mn, unicode.Mc, unicode.Me)
}

func loadStopwords(path string) (map[string]struct{}, error) {
	f, err := stopwordFS.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
