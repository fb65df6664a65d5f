// Package text implements language-aware text normalisation:
// lowercasing, Unicode word segmentation and stopword removal.
package text
