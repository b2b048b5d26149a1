/*
date.go - Pure calendar-date type

PURPOSE:
  Provides the Date type used as the ledger key. A Date is a calendar
  identity (year, month, day) with NO time-of-day component, so it can
  never shift across a UTC-offset or daylight-saving boundary the way a
  time.Time can when constructed at local midnight.

CANONICAL FORM:
  "2006-01-02" (zero-padded, big-endian). Because the canonical form is
  zero-padded and big-endian, lexicographic string comparison IS
  chronological comparison. Range filtering relies on this.

ARITHMETIC:
  All date arithmetic anchors at NOON UTC before calling into time.Time,
  so an offset of up to +/-12h can never move the result to an adjacent
  day.

SEE ALSO:
  - ledger.go: Uses Date as the record key
  - calendar/grid.go: Uses Date arithmetic to build the month grid
*/
package ledger

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar-date identity (no time-of-day)
// =============================================================================

type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

// NewDate builds a Date, normalizing out-of-range components the way
// time.Date does (e.g. January 32 becomes February 1).
func NewDate(year int, month time.Month, day int) Date {
	t := anchor(Date{Year: year, Month: month, Day: day})
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses the canonical "YYYY-MM-DD" form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Today returns the current calendar date in local time.
// The ledger treats dates as identities, so "today" is whatever day the
// user's wall clock shows, not the UTC day.
func Today() Date {
	now := time.Now()
	return Date{Year: now.Year(), Month: now.Month(), Day: now.Day()}
}

// anchor converts a Date to a time.Time at NOON UTC. Noon keeps day
// arithmetic immune to offset shifts in either direction.
func anchor(d Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
}

func (d Date) String() string { return anchor(d).Format(dateLayout) }

// =============================================================================
// COMPARISON - Lexicographic on the canonical form
// =============================================================================

func (d Date) Before(other Date) bool { return d.String() < other.String() }
func (d Date) After(other Date) bool  { return d.String() > other.String() }
func (d Date) Equal(other Date) bool  { return d.String() == other.String() }

func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// =============================================================================
// ARITHMETIC
// =============================================================================

func (d Date) AddDays(n int) Date {
	t := anchor(d).AddDate(0, 0, n)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) Weekday() time.Weekday { return anchor(d).Weekday() }

// DaysBetween returns the number of days from one date to another
// (positive when to is later than from).
func DaysBetween(from, to Date) int {
	return int(anchor(to).Sub(anchor(from)).Hours() / 24)
}

func FirstOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }

// DaysInMonth returns the day count of the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	t := time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC)
	return t.Day()
}

func StartOfYear(year int) Date { return NewDate(year, time.January, 1) }
func EndOfYear(year int) Date   { return NewDate(year, time.December, 31) }
