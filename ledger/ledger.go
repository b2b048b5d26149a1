/*
ledger.go - The date-keyed hours ledger

PURPOSE:
  The Ledger owns the collection of per-day hours records for one tracked
  calendar year and enforces every validation and range invariant. It is
  the single source of truth the rendering surface reads and the mutation
  target every user action dispatches into.

INVARIANTS:
  I1: For every record, 0 <= hours <= 24 and hours is a multiple of 0.5.
  I2: At most one record per date.
  I3: Every record's date falls inside the tracked window
      [window.Start, window.End].
  I4: No record's date is strictly after today, as observed at the moment
      of validation.

MUTATION CONTRACT:
  Every mutation either produces a new valid state or leaves the previous
  state untouched and returns exactly one error kind. There is no partial
  mutation. The Ledger itself is NOT goroutine-safe; concurrency discipline
  belongs to the owning service (see tracker package).

ORDERING:
  Records keep insertion order. Recency queries sort a copy; they never
  reorder the backing slice.

SEE ALSO:
  - errors.go: The error taxonomy
  - snapshot.go: JSON snapshot serialization
  - tracker/tracker.go: Persistence + observer wiring around this type
*/
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TYPES
// =============================================================================

// DayRecord is the hours logged for exactly one calendar date.
type DayRecord struct {
	Date  Date
	Hours decimal.Decimal
}

// Window is the closed date interval records may fall in.
type Window struct {
	Start Date
	End   Date
}

// YearWindow returns the window covering one calendar year.
func YearWindow(year int) Window {
	return Window{Start: StartOfYear(year), End: EndOfYear(year)}
}

func (w Window) Contains(d Date) bool {
	return d.AfterOrEqual(w.Start) && d.BeforeOrEqual(w.End)
}

func (w Window) String() string {
	return "[" + w.Start.String() + ", " + w.End.String() + "]"
}

// MaxRangeDays is the largest inclusive span HoursInRange accepts.
const MaxRangeDays = 365

// Clock supplies "today" for I4 validation. Injectable for tests.
type Clock func() Date

// =============================================================================
// LEDGER
// =============================================================================

// Ledger is the ordered-by-insertion, unique-by-date record collection.
type Ledger struct {
	window  Window
	now     Clock
	records []DayRecord
}

// New creates an empty ledger for the given window, using the wall clock.
func New(window Window) *Ledger {
	return NewWithClock(window, Today)
}

// NewWithClock creates an empty ledger with an injected clock.
func NewWithClock(window Window, now Clock) *Ledger {
	return &Ledger{window: window, now: now}
}

func (l *Ledger) Window() Window { return l.window }

// Today returns the ledger's current date per its clock.
func (l *Ledger) Today() Date { return l.now() }

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.records) }

// Records returns a copy of all records in insertion order.
func (l *Ledger) Records() []DayRecord {
	out := make([]DayRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Hours returns the hours logged for a date, zero if absent.
func (l *Ledger) Hours(date Date) decimal.Decimal {
	if i := l.find(date); i >= 0 {
		return l.records[i].Hours
	}
	return decimal.Zero
}

// find returns the record index for date, -1 if absent. Linear scan:
// the collection is bounded by the days in one year.
func (l *Ledger) find(date Date) int {
	for i, r := range l.records {
		if r.Date.Equal(date) {
			return i
		}
	}
	return -1
}

// =============================================================================
// WRITE OPERATIONS
// =============================================================================

// validateDate enforces I3 and I4.
func (l *Ledger) validateDate(date Date) error {
	today := l.now()
	if !l.window.Contains(date) || date.After(today) {
		return &DateOutOfWindowError{Date: date, Window: l.window, Today: today}
	}
	return nil
}

// SetHours replaces (or creates) the record for date with the requested
// value, rounded to the nearest 0.5 and clamped into [0, 24].
//
// A true zero-hours request is stored as a zero record. A non-zero request
// that only became zero through rounding/clamping fails with
// OutOfRangeError instead of being silently accepted as zero.
func (l *Ledger) SetHours(date Date, requested float64) error {
	if err := l.validateDate(date); err != nil {
		return err
	}
	req, err := hoursFromFloat(requested)
	if err != nil {
		return err
	}
	h := clampHours(roundHalf(req))
	if h.IsZero() && !req.IsZero() {
		return &OutOfRangeError{Date: date, Requested: req, Reason: ClampedToZero}
	}
	l.upsert(date, h)
	return nil
}

// AddHours applies a relative delta to the record for date.
//
// The candidate value is clamp(roundHalf(current + delta)). When the
// candidate equals the current value the delta was fully absorbed by
// clamping, and the caller is told why nothing happened rather than the
// call silently doing nothing: CannotExceedMaximum for positive deltas,
// CannotGoNegative for negative ones. A delta of exactly zero is a
// legitimate no-op, not an error.
func (l *Ledger) AddHours(date Date, delta float64) error {
	if err := l.validateDate(date); err != nil {
		return err
	}
	d, err := hoursFromFloat(delta)
	if err != nil {
		return err
	}
	if d.IsZero() {
		return nil
	}
	current := l.Hours(date)
	candidate := clampHours(roundHalf(current.Add(d)))
	if candidate.Equal(current) {
		reason := CannotExceedMaximum
		if d.IsNegative() {
			reason = CannotGoNegative
		}
		return &OutOfRangeError{Date: date, Requested: d, Reason: reason}
	}
	l.upsert(date, candidate)
	return nil
}

// DeleteHours removes the record for date entirely.
// Deleting a date with no record is a no-op, not an error.
func (l *Ledger) DeleteHours(date Date) {
	if i := l.find(date); i >= 0 {
		l.records = append(l.records[:i], l.records[i+1:]...)
	}
}

// DeleteHoursAmount reduces the record for date by amount, rounded to
// the nearest half hour so the remainder always satisfies I1. When the
// rounded amount covers the whole record the record is removed;
// otherwise it is reduced and retained, even at a very small positive
// value (no auto-removal near zero). Amounts that round to zero or
// below, and absent dates, are no-ops.
func (l *Ledger) DeleteHoursAmount(date Date, amount float64) {
	a, err := hoursFromFloat(amount)
	if err != nil {
		return
	}
	a = roundHalf(a)
	if !a.IsPositive() {
		return
	}
	i := l.find(date)
	if i < 0 {
		return
	}
	current := l.records[i].Hours
	if a.GreaterThanOrEqual(current) {
		l.records = append(l.records[:i], l.records[i+1:]...)
		return
	}
	l.records[i].Hours = current.Sub(a)
}

// upsert replaces the record for date, or appends a new one, preserving
// insertion order (I2).
func (l *Ledger) upsert(date Date, hours decimal.Decimal) {
	if i := l.find(date); i >= 0 {
		l.records[i].Hours = hours
		return
	}
	l.records = append(l.records, DayRecord{Date: date, Hours: hours})
}

// =============================================================================
// READ OPERATIONS (aggregates)
// =============================================================================

// TotalHours sums hours over all records.
func (l *Ledger) TotalHours() decimal.Decimal {
	total := decimal.Zero
	for _, r := range l.records {
		total = total.Add(r.Hours)
	}
	return total
}

// HoursInMonth sums hours over records falling in (year, month).
func (l *Ledger) HoursInMonth(year int, month time.Month) decimal.Decimal {
	total := decimal.Zero
	for _, r := range l.records {
		if r.Date.Year == year && r.Date.Month == month {
			total = total.Add(r.Hours)
		}
	}
	return total
}

// HoursInRange sums hours over records with start <= date <= end,
// inclusive on both ends. Endpoints given in reverse order are swapped.
// Fails with RangeTooLargeError when the inclusive span exceeds
// MaxRangeDays.
//
// The filter compares canonical date strings lexicographically, which is
// chronological because the form is zero-padded and big-endian.
func (l *Ledger) HoursInRange(start, end Date) (decimal.Decimal, error) {
	if start.After(end) {
		start, end = end, start
	}
	span := DaysBetween(start, end) + 1
	if span > MaxRangeDays {
		return decimal.Zero, &RangeTooLargeError{Start: start, End: end, SpanDays: span}
	}
	lo, hi := start.String(), end.String()
	total := decimal.Zero
	for _, r := range l.records {
		if s := r.Date.String(); lo <= s && s <= hi {
			total = total.Add(r.Hours)
		}
	}
	return total, nil
}

// RecordsByRecency returns the limit most recent records, ordered by date
// descending. Ties cannot occur: dates are unique (I2). A non-positive
// limit yields nothing.
func (l *Ledger) RecordsByRecency(limit int) []DayRecord {
	if limit <= 0 {
		return nil
	}
	out := make([]DayRecord, len(l.records))
	copy(out, l.records)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if limit < len(out) {
		out = out[:limit]
	}
	return out
}
