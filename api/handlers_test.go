/*
handlers_test.go - Handler tests for the rendering-surface contract

Exercises the routes the widget frontend depends on, including the
error-kind mapping it uses to choose notifications.
*/
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally/hours-engine/export"
	"github.com/tally/hours-engine/ledger"
	"github.com/tally/hours-engine/store"
	"github.com/tally/hours-engine/tracker"
)

// =============================================================================
// TEST SETUP
// =============================================================================

var testToday = ledger.NewDate(2025, time.June, 15)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	l := ledger.NewWithClock(ledger.YearWindow(2025), func() ledger.Date { return testToday })
	tr := tracker.New(l, store.NewMemory())
	return NewRouter(NewHandler(tr, export.New(tr, t.TempDir())))
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// =============================================================================
// WRITE + READ FLOW
// =============================================================================

func TestSetHours_ThenRead(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/hours", `{"date":"2025-03-10","hours":"7.3"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	set := decode[RecordDTO](t, rec)
	assert.Equal(t, 7.5, set.Hours, "rounded to the nearest half hour")

	rec = do(t, router, http.MethodGet, "/api/hours/2025-03-10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7.5, decode[RecordDTO](t, rec).Hours)

	rec = do(t, router, http.MethodGet, "/api/hours/total", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7.5, decode[map[string]float64](t, rec)["total"])
}

func TestAddHours_DefaultsToToday(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/hours/add", `{"delta":"0.5"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	added := decode[RecordDTO](t, rec)
	assert.Equal(t, testToday.String(), added.Date)
	assert.Equal(t, 0.5, added.Hours)

	rec = do(t, router, http.MethodGet, "/api/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[SummaryDTO](t, rec)
	assert.Equal(t, 0.5, summary.TodayHours)
	assert.Equal(t, 0.5, summary.MonthHours)
	assert.Equal(t, 1, summary.RecordCount)
}

func TestDeleteHours_FullAndPartial(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/hours", `{"date":"2025-03-10","hours":"5"}`)

	rec := do(t, router, http.MethodDelete, "/api/hours/2025-03-10?amount=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3.0, decode[RecordDTO](t, rec).Hours)

	rec = do(t, router, http.MethodDelete, "/api/hours/2025-03-10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.0, decode[RecordDTO](t, rec).Hours)
}

func TestDeleteHours_AmountRoundsToHalfStep(t *testing.T) {
	// A tenth-hour amount from the query string is rounded like every
	// other mutation input; the remainder stays on the half-hour step.
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/hours", `{"date":"2025-03-10","hours":"5"}`)

	rec := do(t, router, http.MethodDelete, "/api/hours/2025-03-10?amount=0.3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4.5, decode[RecordDTO](t, rec).Hours)
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantKind   string
	}{
		{"unparseable hours", http.MethodPost, "/api/hours", `{"date":"2025-03-10","hours":"banana"}`, http.StatusBadRequest, "invalid_input"},
		{"future date", http.MethodPost, "/api/hours", `{"date":"2025-06-16","hours":"5"}`, http.StatusBadRequest, "date_out_of_window"},
		{"outside tracked year", http.MethodPost, "/api/hours", `{"date":"2024-06-16","hours":"5"}`, http.StatusBadRequest, "date_out_of_window"},
		{"clamped to zero", http.MethodPost, "/api/hours", `{"date":"2025-03-10","hours":"-4"}`, http.StatusBadRequest, "out_of_range"},
		{"subtract below floor", http.MethodPost, "/api/hours/add", `{"delta":"-1"}`, http.StatusBadRequest, "out_of_range"},
		{"range too large", http.MethodGet, "/api/hours/range?start=2024-01-01&end=2025-06-01", "", http.StatusBadRequest, "range_too_large"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(t)
			rec := do(t, router, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tc.wantKind, decode[ErrorDTO](t, rec).Kind)
		})
	}
}

func TestInvalidParams(t *testing.T) {
	router := newTestRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/hours/month/2025/13", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/hours/not-a-date", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/hours/range?start=bogus&end=2025-06-01", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/hours/recent?limit=-1", "").Code)
}

// =============================================================================
// AGGREGATE ENDPOINTS
// =============================================================================

func TestRangeEndpoint_NormalizesEndpoints(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/hours", `{"date":"2025-02-10","hours":"4"}`)
	do(t, router, http.MethodPost, "/api/hours", `{"date":"2025-02-20","hours":"6"}`)

	rec := do(t, router, http.MethodGet, "/api/hours/range?start=2025-02-28&end=2025-02-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[RangeTotalDTO](t, rec)
	assert.Equal(t, "2025-02-01", got.Start, "reversed endpoints are echoed normalized")
	assert.Equal(t, "2025-02-28", got.End)
	assert.Equal(t, 10.0, got.Total)
}

func TestMonthEndpoint(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/hours", `{"date":"2025-03-10","hours":"4"}`)
	do(t, router, http.MethodPost, "/api/hours", `{"date":"2025-04-10","hours":"6"}`)

	rec := do(t, router, http.MethodGet, "/api/hours/month/2025/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[MonthTotalDTO](t, rec)
	assert.Equal(t, 4.0, got.Total)
}

func TestRecentEndpoint(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/hours", `{"date":"2025-03-10","hours":"1"}`)
	do(t, router, http.MethodPost, "/api/hours", `{"date":"2025-05-01","hours":"2"}`)
	do(t, router, http.MethodPost, "/api/hours", `{"date":"2025-01-05","hours":"3"}`)

	rec := do(t, router, http.MethodGet, "/api/hours/recent?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]RecordDTO](t, rec)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-05-01", got[0].Date)
	assert.Equal(t, "2025-03-10", got[1].Date)
}

func TestCalendarEndpoint(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/hours", `{"date":"2025-01-01","hours":"2"}`)

	rec := do(t, router, http.MethodGet, "/api/calendar/2025/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[CalendarDTO](t, rec)

	require.Len(t, got.Cells, 42)
	assert.Equal(t, "2025-01-01", got.Cells[3].Date, "January 2025 starts in the fourth grid position")
	assert.True(t, got.Cells[3].InMonth)
	assert.Equal(t, 2.0, got.Cells[3].Hours, "grid cells are joined with logged hours")
	assert.False(t, got.Cells[0].InMonth)
}

// =============================================================================
// EXPORT
// =============================================================================

func TestExportEndpoint(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/hours", `{"date":"2025-03-10","hours":"7.5"}`)

	rec := do(t, router, http.MethodPost, "/api/export", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[export.Result](t, rec)
	assert.Contains(t, got.Summary, "7.5 hours")
	assert.Contains(t, got.Path, ".png")
}
