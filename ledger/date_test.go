package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_Canonical(t *testing.T) {
	d, err := ParseDate("2025-03-09")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: time.March, Day: 9}, d)
	assert.Equal(t, "2025-03-09", d.String())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "03/09/2025", "2025-13-01", "2025-02-30", "yesterday"} {
		_, err := ParseDate(input)
		assert.Error(t, err, "input %q should not parse", input)
	}
}

func TestDate_LexicographicOrderIsChronological(t *testing.T) {
	// The canonical form is zero-padded and big-endian, so string order
	// must match date order. Single-digit days/months are the trap.
	earlier, _ := ParseDate("2025-02-09")
	later, _ := ParseDate("2025-10-01")

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.Less(t, earlier.String(), later.String())
}

func TestDate_AddDays_MonthAndYearBoundaries(t *testing.T) {
	d := NewDate(2025, time.January, 31)
	assert.Equal(t, "2025-02-01", d.AddDays(1).String())

	d = NewDate(2025, time.December, 31)
	assert.Equal(t, "2026-01-01", d.AddDays(1).String())

	d = NewDate(2025, time.March, 1)
	assert.Equal(t, "2025-02-28", d.AddDays(-1).String())
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(NewDate(2025, time.June, 15), NewDate(2025, time.June, 15)))
	assert.Equal(t, 364, DaysBetween(StartOfYear(2025), EndOfYear(2025)))
	assert.Equal(t, -1, DaysBetween(NewDate(2025, time.June, 15), NewDate(2025, time.June, 14)))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 31, DaysInMonth(2025, time.January))
	assert.Equal(t, 30, DaysInMonth(2025, time.June))
}

func TestDate_Weekday(t *testing.T) {
	// January 1, 2025 is a Wednesday. The calendar grid depends on this
	// being stable regardless of the host timezone.
	assert.Equal(t, time.Wednesday, NewDate(2025, time.January, 1).Weekday())
	assert.Equal(t, time.Sunday, NewDate(2025, time.June, 1).Weekday())
}
