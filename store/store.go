/*
store.go - Snapshot persistence interface

PURPOSE:
  Defines the interface between the tracker and its persistence. The
  ledger is persisted as ONE atomic blob under one key - the whole
  collection every time, never a partial write. That keeps the storage
  contract trivially crash-safe: a reader sees either the previous
  snapshot or the new one, never a mix.

KEY SEMANTICS:
  - Save: replace the snapshot wholesale.
  - Load: return the last saved snapshot, or (nil, nil) when none exists
    yet. Absence is not an error.

IMPLEMENTATIONS:
  - store/memory.go: In-memory, for tests and dev
  - store/sqlite/sqlite.go: Production SQLite single-row blob

SEE ALSO:
  - tracker/tracker.go: Saves after every successful mutation
  - ledger/snapshot.go: The blob's JSON format
*/
package store

import "context"

// SnapshotStore persists the ledger snapshot under a single key.
type SnapshotStore interface {
	// Save atomically replaces the stored snapshot.
	Save(ctx context.Context, snapshot []byte) error

	// Load returns the stored snapshot, or (nil, nil) if none exists.
	Load(ctx context.Context) ([]byte, error)
}
