/*
errors.go - Centralized error types for the hours ledger

PURPOSE:
  All error kinds in one place. Every ledger operation either returns a
  new valid state or leaves state untouched and signals exactly one of
  these kinds - never a partial mutation, never a panic.

ERROR CATEGORIES:
  1. Input errors      - Unparseable hours values
  2. Range errors      - Clamping absorbed the whole request
  3. Window errors     - Date outside the tracked year, or in the future
  4. Query errors      - Range span too large
  5. Storage errors    - Snapshot persistence / export failures

USAGE:
  Callers match with errors.Is against the sentinels, or errors.As
  against the structured types for detail:

    var oor *ledger.OutOfRangeError
    if errors.As(err, &oor) && oor.Reason == ledger.CannotExceedMaximum {
        ...
    }

SEE ALSO:
  - ledger.go: Raises these errors
  - api/handlers.go: Maps them to HTTP statuses via IsClientError
*/
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is returned when an hours value cannot be parsed
	// as a finite number.
	ErrInvalidInput = errors.New("invalid hours input")

	// ErrOutOfRange is returned when rounding and clamping absorbed the
	// entire requested value or delta.
	ErrOutOfRange = errors.New("hours out of range")

	// ErrDateOutOfWindow is returned for dates outside the tracked year
	// or strictly after today.
	ErrDateOutOfWindow = errors.New("date outside tracked window")

	// ErrRangeTooLarge is returned when a range query spans more days
	// than a full year.
	ErrRangeTooLarge = errors.New("range too large")

	// ErrStorage is returned when persisting the snapshot or rasterizing
	// an export fails. The in-memory state is still valid.
	ErrStorage = errors.New("storage failure")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidInputError reports an hours value that is not a finite number.
type InvalidInputError struct {
	Input string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid hours input %q: not a finite number", e.Input)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// OutOfRangeReason says which bound absorbed the request.
type OutOfRangeReason string

const (
	// CannotExceedMaximum: a positive delta was fully absorbed by the
	// 24h/day cap.
	CannotExceedMaximum OutOfRangeReason = "cannot_exceed_maximum"

	// CannotGoNegative: a negative delta was fully absorbed by the zero
	// floor.
	CannotGoNegative OutOfRangeReason = "cannot_go_negative"

	// ClampedToZero: a non-zero absolute request rounded/clamped to zero.
	// A true zero-hours request is allowed; a value that only BECAME zero
	// through clamping is user error, not a silent zero.
	ClampedToZero OutOfRangeReason = "clamped_to_zero"
)

// OutOfRangeError reports a request that clamping turned into a no-op.
type OutOfRangeError struct {
	Date      Date
	Requested decimal.Decimal
	Reason    OutOfRangeReason
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("hours out of range for %s: %s (%s)", e.Date, e.Requested, e.Reason)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// DateOutOfWindowError reports a date outside [window.Start, window.End]
// or strictly after today.
type DateOutOfWindowError struct {
	Date   Date
	Window Window
	Today  Date
}

func (e *DateOutOfWindowError) Error() string {
	if e.Date.After(e.Today) && !e.Date.After(e.Window.End) {
		return fmt.Sprintf("date %s is in the future (today is %s)", e.Date, e.Today)
	}
	return fmt.Sprintf("date %s outside tracked window %s", e.Date, e.Window)
}

func (e *DateOutOfWindowError) Unwrap() error { return ErrDateOutOfWindow }

// RangeTooLargeError reports a range query spanning more than MaxRangeDays.
type RangeTooLargeError struct {
	Start    Date
	End      Date
	SpanDays int
}

func (e *RangeTooLargeError) Error() string {
	return fmt.Sprintf("range [%s, %s] spans %d days, maximum is %d", e.Start, e.End, e.SpanDays, MaxRangeDays)
}

func (e *RangeTooLargeError) Unwrap() error { return ErrRangeTooLarge }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid user input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, ErrDateOutOfWindow) ||
		errors.Is(err, ErrRangeTooLarge)
}
