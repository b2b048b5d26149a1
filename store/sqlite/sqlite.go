/*
Package sqlite provides the SQLite-backed snapshot store.

PURPOSE:
  Implements store.SnapshotStore with a single-row blob table. SQLite is
  the client-local key-value store here: one file on disk, one key, one
  value - the serialized ledger.

SCHEMA:
  ledger_snapshot:
    id         INTEGER PRIMARY KEY, constrained to 1 (single key)
    data       BLOB, the JSON snapshot
    updated_at TEXT, RFC3339 write time

ATOMICITY:
  Save is a single UPSERT statement. SQLite guarantees statement
  atomicity, so a reader sees either the old snapshot or the new one.

WAL MODE:
  Opened with WAL (Write-Ahead Logging): readers don't block the writer,
  better crash recovery.

USAGE:
  st, err := sqlite.New("./tally.db")   // ":memory:" for tests
  if err != nil { ... }
  defer st.Close()

SEE ALSO:
  - store/store.go: Interface definition
  - store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tally/hours-engine/ledger"
)

// Store implements store.SnapshotStore on SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at path and migrates the schema.
// Pass ":memory:" for an in-memory database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ledger.ErrStorage, path, err)
	}
	// One connection: ":memory:" databases are per-connection, and the
	// single-key workload gains nothing from a pool.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS ledger_snapshot (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			data       BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("%w: migrate: %v", ledger.ErrStorage, err)
	}
	return nil
}

// Save atomically replaces the stored snapshot.
func (s *Store) Save(ctx context.Context, snapshot []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ledger_snapshot (id, data, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		snapshot, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%w: save snapshot: %v", ledger.ErrStorage, err)
	}
	return nil
}

// Load returns the stored snapshot, or (nil, nil) if none exists yet.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM ledger_snapshot WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load snapshot: %v", ledger.ErrStorage, err)
	}
	return data, nil
}

func (s *Store) Close() error { return s.db.Close() }
