// Package normalisers provides implementations of the TextNormaliser port.
// A normaliser turns raw query text into the terms the vectoriser counts,
// applying the same rules at training time and at inference time.
//
// Normalisers are selected by language at startup.
package normalisers
