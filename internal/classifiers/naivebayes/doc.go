// Package naivebayes implements a multinomial Naive Bayes classifier over
// sparse TF-IDF feature vectors.
//
// Training computes, per label, a log-prior log(count/N) and, per
// (label, term), a Laplace-smoothed (alpha = 1) log-likelihood
//
//	log((weight(term, label) + 1) / (weight(label) + vocabularySize))
//
// where weights are summed over the label's training vectors. Prediction
// returns the label maximising log-prior + sum(v[i] * loglik[label][i]).
// Labels are kept in lexical order and ties go to the first of them.
//
// A Model is immutable once Fit returns and is safe for concurrent use.
package naivebayes
