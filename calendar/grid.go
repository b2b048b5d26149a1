/*
Package calendar generates the fixed-shape month grid the rendering
surface lays out.

PURPOSE:
  MonthGrid maps a (year, month) pair to exactly 42 cells: the trailing
  days of the previous month needed to reach the first day's weekday
  column, every day of the target month, then leading days of the next
  month as padding. Six full weeks regardless of where the month starts
  or how many days it has - the layout invariant the rendering surface
  depends on for a visually stable 6-row grid.

WEEKDAY ORIGIN:
  Sunday is column 0.

DATE SAFETY:
  All arithmetic goes through ledger.Date, which anchors at noon UTC, so
  no cell can shift to an adjacent day at a UTC-offset or DST boundary.

SEE ALSO:
  - ledger/date.go: The Date type and its arithmetic
  - api/handlers.go: Serves the grid joined with per-day hours
*/
package calendar

import (
	"time"

	"github.com/tally/hours-engine/ledger"
)

// GridCells is the fixed cell count of every month grid: six full weeks.
const GridCells = 42

// GridCell is one slot in the 6x7 month grid.
type GridCell struct {
	Date    ledger.Date
	InMonth bool
}

// MonthGrid returns the 42-cell grid for (year, month).
func MonthGrid(year int, month time.Month) []GridCell {
	first := ledger.FirstOfMonth(year, month)
	start := first.AddDays(-int(first.Weekday()))

	cells := make([]GridCell, GridCells)
	for i := range cells {
		d := start.AddDays(i)
		cells[i] = GridCell{
			Date:    d,
			InMonth: d.Year == first.Year && d.Month == first.Month,
		}
	}
	return cells
}
