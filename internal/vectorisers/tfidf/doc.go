// Package tfidf builds a fixed vocabulary from training documents and maps
// normalised terms into sparse TF-IDF feature vectors.
//
// IDF uses the smoothed form idf(t) = ln((1+n)/(1+df(t))) + 1, where n is the
// number of training documents and df(t) the number containing t. A term
// present in every document receives the lowest weight (1); a term present
// in exactly one document receives the highest.
//
// A Vectoriser is immutable once Fit returns and is safe for concurrent use.
package tfidf
