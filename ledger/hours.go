/*
hours.go - Hours quantities and rounding rules

PURPOSE:
  All hours values in the ledger are decimal.Decimal, never raw float64.
  Hours are logged in half-hour steps up to 24 per day, and half-hour
  rounding must be exact (0.1+0.2 style float drift would eventually leak
  into totals and snapshots).

RULES (applied in this order):
  1. Round to the nearest 0.5 (half away from zero)
  2. Clamp into [0, 24]

SEE ALSO:
  - ledger.go: Applies these rules in SetHours / AddHours
  - errors.go: The error kinds raised when clamping absorbs the input
*/
package ledger

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CONSTANTS
// =============================================================================

var (
	two = decimal.NewFromInt(2)

	// MaxHoursPerDay is the per-day cap. There are only 24 hours in a day,
	// even on a very good day.
	MaxHoursPerDay = decimal.NewFromInt(24)
)

// =============================================================================
// PARSING
// =============================================================================

// ParseHours converts raw user input into an hours value. NaN, infinities
// and non-numeric text all fail with ErrInvalidInput; range handling is
// SetHours' job, not the parser's.
func ParseHours(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &InvalidInputError{Input: s}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InvalidInputError{Input: s}
	}
	return v, nil
}

// hoursFromFloat guards the float64 -> decimal conversion.
// decimal.NewFromFloat panics on NaN/Inf, so the check must come first.
func hoursFromFloat(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, &InvalidInputError{Input: strconv.FormatFloat(v, 'g', -1, 64)}
	}
	return decimal.NewFromFloat(v), nil
}

// =============================================================================
// ROUNDING AND CLAMPING
// =============================================================================

// roundHalf rounds to the nearest 0.5, half away from zero.
func roundHalf(d decimal.Decimal) decimal.Decimal {
	return d.Mul(two).Round(0).Div(two)
}

// clampHours clamps into [0, MaxHoursPerDay].
func clampHours(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(MaxHoursPerDay) {
		return MaxHoursPerDay
	}
	return d
}

// validHours reports whether h satisfies the stored-record invariant:
// 0 <= h <= 24 and h is a multiple of 0.5.
func validHours(h decimal.Decimal) bool {
	if h.IsNegative() || h.GreaterThan(MaxHoursPerDay) {
		return false
	}
	return h.Mul(two).IsInteger()
}
