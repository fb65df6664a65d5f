package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/replybot/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "corpus.db"

// Store owns the SQLite connection and exposes the corpus store over it.
type Store struct {
	db   *sql.DB
	path string
}

// Import describes the most recent corpus import.
type Import struct {
	Records    int
	ImportedAt time.Time
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.replybot/data/corpus.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".replybot", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CorpusStore returns a CorpusStore interface backed by this store.
func (s *Store) CorpusStore() driven.CorpusStore {
	return &corpusStore{store: s}
}

// LastImport returns the most recent import, or domain.ErrNotFound when the
// corpus has never been imported.
func (s *Store) LastImport(ctx context.Context) (*Import, error) {
	var records int
	var importedAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT records, imported_at FROM corpus_imports ORDER BY id DESC LIMIT 1",
	).Scan(&records, &importedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying last import: %w", err)
	}
	return &Import{Records: records, ImportedAt: time.Unix(importedAt, 0).UTC()}, nil
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}

// migrate runs all pending migrations, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	currentVersion, err := s.SchemaVersion(context.Background())
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_training_records.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Corpus Store ====================

// corpusStore implements driven.CorpusStore.
type corpusStore struct {
	store *Store
}

var _ driven.CorpusStore = (*corpusStore)(nil)

// Load returns every stored record in import order.
func (c *corpusStore) Load(ctx context.Context) (domain.TrainingSet, error) {
	rows, err := c.store.db.QueryContext(ctx,
		"SELECT query, response FROM training_records ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying training records: %w", err)
	}
	defer rows.Close()

	set := domain.TrainingSet{}
	for rows.Next() {
		var r domain.TrainingRecord
		if err := rows.Scan(&r.Query, &r.Response); err != nil {
			return nil, fmt.Errorf("scanning training record: %w", err)
		}
		set = append(set, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating training records: %w", err)
	}
	return set, nil
}

// Describe identifies the store in log lines and errors.
func (c *corpusStore) Describe() string {
	return "sqlite " + c.store.path
}

// Replace swaps the stored corpus for set in a single transaction.
func (c *corpusStore) Replace(ctx context.Context, set domain.TrainingSet) error {
	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM training_records"); err != nil {
		return fmt.Errorf("clearing training records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO training_records (position, query, response) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range set {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if _, err := stmt.ExecContext(ctx, i+1, r.Query, r.Response); err != nil {
			return fmt.Errorf("inserting record %d: %w", i+1, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO corpus_imports (records, imported_at) VALUES (?, ?)",
		len(set), time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("recording import: %w", err)
	}

	return tx.Commit()
}

// Count returns the number of stored records.
func (c *corpusStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM training_records").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting training records: %w", err)
	}
	return n, nil
}
