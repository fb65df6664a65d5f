// Package domain defines the core business entities for replybot.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - TrainingRecord: A labelled (query, response) pair from the corpus
//   - TrainingSet: The ordered records a pipeline is trained on
//   - FeatureVector: A sparse TF-IDF representation of one document
//   - AnswerRequest / Answer: The serving entry point's input and output
//   - AppSettings: Configuration for transports and the pipeline
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
