// Package sqlite provides the SQLite-backed corpus store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. A single Store owns the connection and
// hands out the CorpusStore view over it.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files;
// applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.replybot/data/corpus.db
package sqlite
