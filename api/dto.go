/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for the rendering-surface contract. These
  types decouple the ledger's internal model (decimal hours, Date values)
  from the wire format (float hours, "YYYY-MM-DD" strings).

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

HOURS AS STRINGS IN REQUESTS:
  Mutation requests carry hours/delta values as strings, exactly as they
  leave the widget's input field. Parsing is the ledger's job
  (ledger.ParseHours), so "garbage in a text box" surfaces as the
  InvalidInputError kind instead of a generic JSON decode failure.

SEE ALSO:
  - handlers.go: Uses these types
  - ledger/snapshot.go: The (different) persistence wire format
*/
package api

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// RecordDTO is one day's logged hours.
type RecordDTO struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// SummaryDTO is the headline view state: today, this month, the year.
type SummaryDTO struct {
	Date        string  `json:"date"`
	TodayHours  float64 `json:"today_hours"`
	MonthHours  float64 `json:"month_hours"`
	TotalHours  float64 `json:"total_hours"`
	RecordCount int     `json:"record_count"`
}

// RangeTotalDTO echoes the normalized endpoints with the sum.
type RangeTotalDTO struct {
	Start string  `json:"start"`
	End   string  `json:"end"`
	Total float64 `json:"total"`
}

// MonthTotalDTO is the sum for one (year, month).
type MonthTotalDTO struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// GridCellDTO is one cell of the 42-cell month grid, joined with the
// hours logged on that date (zero when absent or out of window).
type GridCellDTO struct {
	Date    string  `json:"date"`
	InMonth bool    `json:"in_month"`
	Hours   float64 `json:"hours"`
}

// CalendarDTO is the full six-week grid for a displayed month.
type CalendarDTO struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Cells []GridCellDTO `json:"cells"`
}

// ErrorDTO is the uniform error envelope.
type ErrorDTO struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// SetHoursRequest sets the absolute hours for a chosen date.
type SetHoursRequest struct {
	Date  string `json:"date"`
	Hours string `json:"hours"`
}

// AddHoursRequest applies a relative delta; an empty date means today.
type AddHoursRequest struct {
	Date  string `json:"date,omitempty"`
	Delta string `json:"delta"`
}
