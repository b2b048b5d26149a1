/*
handlers.go - HTTP handlers for the rendering-surface contract

PURPOSE:
  Exposes the hours ledger to the widget frontend. Handles HTTP
  request/response and JSON shapes, delegates every decision to the
  tracker/ledger, and maps the ledger's error taxonomy onto statuses.

ENDPOINTS:
  Reads:
    GET    /api/summary                   Today / month / year headline
    GET    /api/hours/{date}              One day's hours
    GET    /api/hours/total               Yearly total
    GET    /api/hours/recent?limit=N      Most recent records
    GET    /api/hours/month/{year}/{month}  Month total
    GET    /api/hours/range?start=&end=   Range total (endpoints swap-safe)
    GET    /api/calendar/{year}/{month}   42-cell grid with per-day hours

  Writes:
    POST   /api/hours                     Absolute set for a chosen date
    POST   /api/hours/add                 Relative delta (default: today)
    DELETE /api/hours/{date}?amount=      Full or partial delete

  Export:
    POST   /api/export                    Render + write the summary card

ERROR HANDLING:
  - 400: unparseable input, clamped-to-no-op, date out of window,
         range too large (ledger.IsClientError)
  - 409: export already in flight
  - 500: snapshot persistence or rasterization failures

SEE ALSO:
  - dto.go: Request/response shapes
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tally/hours-engine/calendar"
	"github.com/tally/hours-engine/export"
	"github.com/tally/hours-engine/ledger"
	"github.com/tally/hours-engine/tracker"
)

// defaultRecentLimit bounds the recency list when the client doesn't ask
// for a specific count.
const defaultRecentLimit = 10

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Tracker  *tracker.Tracker
	Exporter *export.Service
}

func NewHandler(t *tracker.Tracker, e *export.Service) *Handler {
	return &Handler{Tracker: t, Exporter: e}
}

// =============================================================================
// READ HANDLERS
// =============================================================================

// GetSummary returns the headline numbers the widget shows at rest.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	today := h.Tracker.Today()
	writeJSON(w, http.StatusOK, SummaryDTO{
		Date:        today.String(),
		TodayHours:  h.Tracker.Hours(today).InexactFloat64(),
		MonthHours:  h.Tracker.HoursInMonth(today.Year, today.Month).InexactFloat64(),
		TotalHours:  h.Tracker.TotalHours().InexactFloat64(),
		RecordCount: h.Tracker.RecordCount(),
	})
}

// GetDay returns the hours for one date, zero when nothing is logged.
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDateParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, RecordDTO{Date: date.String(), Hours: h.Tracker.Hours(date).InexactFloat64()})
}

// GetTotal returns the yearly total.
func (h *Handler) GetTotal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]float64{"total": h.Tracker.TotalHours().InexactFloat64()})
}

// GetRecent returns the most recent records, date descending.
func (h *Handler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit", err)
			return
		}
		limit = n
	}
	records := h.Tracker.RecordsByRecency(limit)
	dtos := make([]RecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = RecordDTO{Date: rec.Date.String(), Hours: rec.Hours.InexactFloat64()}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetMonthTotal returns the sum for one (year, month).
func (h *Handler) GetMonthTotal(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseYearMonth(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, MonthTotalDTO{
		Year:  year,
		Month: int(month),
		Total: h.Tracker.HoursInMonth(year, month).InexactFloat64(),
	})
}

// GetRangeTotal sums hours between two dates, inclusive. Endpoints in
// reverse order are normalized, and the normalized pair is echoed back.
func (h *Handler) GetRangeTotal(w http.ResponseWriter, r *http.Request) {
	start, err := ledger.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date", err)
		return
	}
	end, err := ledger.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date", err)
		return
	}
	if start.After(end) {
		start, end = end, start
	}
	total, err := h.Tracker.HoursInRange(start, end)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RangeTotalDTO{Start: start.String(), End: end.String(), Total: total.InexactFloat64()})
}

// GetCalendar returns the 42-cell grid for a month, each cell joined
// with that day's logged hours.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseYearMonth(w, r)
	if !ok {
		return
	}
	cells := calendar.MonthGrid(year, month)
	dtos := make([]GridCellDTO, len(cells))
	for i, c := range cells {
		dtos[i] = GridCellDTO{
			Date:    c.Date.String(),
			InMonth: c.InMonth,
			Hours:   h.Tracker.Hours(c.Date).InexactFloat64(),
		}
	}
	writeJSON(w, http.StatusOK, CalendarDTO{Year: year, Month: int(month), Cells: dtos})
}

// =============================================================================
// WRITE HANDLERS
// =============================================================================

// SetHours sets the absolute hours for a chosen date.
func (h *Handler) SetHours(w http.ResponseWriter, r *http.Request) {
	var req SetHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	date, err := ledger.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err)
		return
	}
	hours, err := ledger.ParseHours(req.Hours)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if err := h.Tracker.SetHours(r.Context(), date, hours); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RecordDTO{Date: date.String(), Hours: h.Tracker.Hours(date).InexactFloat64()})
}

// AddHours applies a relative delta, defaulting to today - the quick-add
// interaction.
func (h *Handler) AddHours(w http.ResponseWriter, r *http.Request) {
	var req AddHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	date := h.Tracker.Today()
	if req.Date != "" {
		var err error
		date, err = ledger.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date", err)
			return
		}
	}
	delta, err := ledger.ParseHours(req.Delta)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if err := h.Tracker.AddHours(r.Context(), date, delta); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RecordDTO{Date: date.String(), Hours: h.Tracker.Hours(date).InexactFloat64()})
}

// DeleteHours removes a record, or part of it when ?amount= is given.
func (h *Handler) DeleteHours(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDateParam(w, r)
	if !ok {
		return
	}
	if s := r.URL.Query().Get("amount"); s != "" {
		amount, err := ledger.ParseHours(s)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		if err := h.Tracker.DeleteHoursAmount(r.Context(), date, amount); err != nil {
			writeLedgerError(w, err)
			return
		}
	} else if err := h.Tracker.DeleteHours(r.Context(), date); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RecordDTO{Date: date.String(), Hours: h.Tracker.Hours(date).InexactFloat64()})
}

// =============================================================================
// EXPORT HANDLER
// =============================================================================

// Export renders the summary card and returns its path plus the summary
// string for the sharing target.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	result, err := h.Exporter.Export(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// HELPERS
// =============================================================================

func parseDateParam(w http.ResponseWriter, r *http.Request) (ledger.Date, bool) {
	date, err := ledger.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err)
		return ledger.Date{}, false
	}
	return date, true
}

func parseYearMonth(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year", err)
		return 0, 0, false
	}
	m, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || m < 1 || m > 12 {
		writeError(w, http.StatusBadRequest, "invalid month", err)
		return 0, 0, false
	}
	return year, time.Month(m), true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	dto := ErrorDTO{Error: message}
	if err != nil {
		dto.Error = message + ": " + err.Error()
	}
	writeJSON(w, status, dto)
}

// writeLedgerError maps the ledger's error taxonomy onto HTTP statuses.
func writeLedgerError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case ledger.IsClientError(err):
		status = http.StatusBadRequest
	case errors.Is(err, export.ErrExportInFlight):
		status = http.StatusConflict
	}
	writeJSON(w, status, ErrorDTO{Error: err.Error(), Kind: errorKind(err)})
}

// errorKind names the error category for the frontend's notification
// routing.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ledger.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, ledger.ErrDateOutOfWindow):
		return "date_out_of_window"
	case errors.Is(err, ledger.ErrRangeTooLarge):
		return "range_too_large"
	case errors.Is(err, export.ErrExportInFlight):
		return "export_in_flight"
	case errors.Is(err, ledger.ErrStorage):
		return "storage"
	default:
		return ""
	}
}
