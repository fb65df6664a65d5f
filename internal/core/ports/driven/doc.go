// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CorpusSource: Loads the training set (CSV file or SQLite store)
//   - TextNormaliser: Turns raw text into terms, shared by training and inference
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These are only needed by specific commands:
//
//   - CorpusStore: Persists an imported corpus. Only used by corpus import
//     and the sqlite corpus source.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
