package driven

// TextNormaliser turns raw text into the sequence of terms the vectoriser
// counts. Implementations must be deterministic and safe for concurrent use:
// the instance used to build the vocabulary at training time is the one used
// for every inference call.
type TextNormaliser interface {
	// Normalise lowercases, tokenises and removes stopwords.
	// Empty or all-stopword input yields an empty, non-nil slice.
	Normalise(text string) []string

	// Language returns the language whose rules the normaliser applies.
	Language() string
}
