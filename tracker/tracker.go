/*
Package tracker wires the hours ledger to persistence and observers.

PURPOSE:
  The ledger package is pure state and rules; this package owns the side
  effects around it. Every mutation runs the same pipeline:

    validate -> apply -> persist snapshot -> notify observers

  The Tracker is explicitly constructed and passed to its consumers -
  there is no ambient singleton.

PERSISTENCE CONTRACT:
  The snapshot is written after every successful mutation, as a single
  atomic write of the whole collection. A storage failure is REPORTED,
  not retried, and does not roll back the in-memory mutation: the new
  state stays visible to later reads in this process, it just isn't
  durable yet. The next successful mutation re-persists everything.

OBSERVERS:
  Subscribers are invoked synchronously, once per successful mutation,
  after the persist attempt. This is the explicit re-render contract
  between the ledger and the rendering surface.

CONCURRENCY:
  The originating widget was single-threaded; an HTTP surface is not.
  The Tracker serializes all ledger access behind one RWMutex so each
  dispatched action still runs to completion before the next.

SEE ALSO:
  - ledger/ledger.go: The rules this package wraps
  - store/store.go: Snapshot persistence interface
  - api/handlers.go: The consumer
*/
package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally/hours-engine/ledger"
	"github.com/tally/hours-engine/store"
)

// =============================================================================
// EVENTS
// =============================================================================

type Op string

const (
	OpSet    Op = "set"
	OpAdd    Op = "add"
	OpDelete Op = "delete"
)

// Event describes one successful mutation.
type Event struct {
	Op   Op
	Date ledger.Date
}

// Observer receives an Event after each successful mutation.
type Observer func(Event)

// =============================================================================
// TRACKER
// =============================================================================

type Tracker struct {
	mu        sync.RWMutex
	ledger    *ledger.Ledger
	store     store.SnapshotStore
	observers []Observer
}

func New(l *ledger.Ledger, s store.SnapshotStore) *Tracker {
	return &Tracker{ledger: l, store: s}
}

// Subscribe registers an observer. Not safe to call concurrently with
// mutations; register everything during startup.
func (t *Tracker) Subscribe(o Observer) {
	t.observers = append(t.observers, o)
}

// Restore loads the persisted snapshot into the ledger. A missing
// snapshot restores empty; a malformed one restores empty and returns
// the decode error so the caller can log it. Individually invalid
// entries are dropped and counted.
func (t *Tracker) Restore(ctx context.Context) (skipped int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := t.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	return t.ledger.RestoreSnapshot(data)
}

// =============================================================================
// WRITE OPERATIONS
// =============================================================================

func (t *Tracker) SetHours(ctx context.Context, date ledger.Date, hours float64) error {
	return t.mutate(ctx, Event{Op: OpSet, Date: date}, func() error {
		return t.ledger.SetHours(date, hours)
	})
}

func (t *Tracker) AddHours(ctx context.Context, date ledger.Date, delta float64) error {
	return t.mutate(ctx, Event{Op: OpAdd, Date: date}, func() error {
		return t.ledger.AddHours(date, delta)
	})
}

func (t *Tracker) DeleteHours(ctx context.Context, date ledger.Date) error {
	return t.mutate(ctx, Event{Op: OpDelete, Date: date}, func() error {
		t.ledger.DeleteHours(date)
		return nil
	})
}

func (t *Tracker) DeleteHoursAmount(ctx context.Context, date ledger.Date, amount float64) error {
	return t.mutate(ctx, Event{Op: OpDelete, Date: date}, func() error {
		t.ledger.DeleteHoursAmount(date, amount)
		return nil
	})
}

// mutate runs the validate/apply step, then persists and notifies.
// Validation failures leave state untouched and skip both side effects.
func (t *Tracker) mutate(ctx context.Context, ev Event, apply func() error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := apply(); err != nil {
		return err
	}
	err := t.persist(ctx)
	t.notify(ev)
	return err
}

func (t *Tracker) persist(ctx context.Context) error {
	data, err := t.ledger.Snapshot()
	if err != nil {
		return err
	}
	return t.store.Save(ctx, data)
}

func (t *Tracker) notify(ev Event) {
	for _, o := range t.observers {
		o(ev)
	}
}

// =============================================================================
// READ OPERATIONS (delegated under the read lock)
// =============================================================================

func (t *Tracker) Today() ledger.Date {
	return t.ledger.Today()
}

func (t *Tracker) Hours(date ledger.Date) decimal.Decimal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ledger.Hours(date)
}

func (t *Tracker) TotalHours() decimal.Decimal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ledger.TotalHours()
}

func (t *Tracker) HoursInMonth(year int, month time.Month) decimal.Decimal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ledger.HoursInMonth(year, month)
}

func (t *Tracker) HoursInRange(start, end ledger.Date) (decimal.Decimal, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ledger.HoursInRange(start, end)
}

func (t *Tracker) RecordCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ledger.Len()
}

func (t *Tracker) RecordsByRecency(limit int) []ledger.DayRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ledger.RecordsByRecency(limit)
}

func (t *Tracker) Window() ledger.Window {
	return t.ledger.Window()
}
