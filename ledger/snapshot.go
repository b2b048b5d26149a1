/*
snapshot.go - JSON snapshot serialization

PURPOSE:
  The whole ledger is persisted as one JSON array of {date, hours}
  objects under a single storage key. There is no version field and no
  migration path; a reader hitting a malformed snapshot restores an
  empty ledger rather than crashing.

FORMAT:
  [{"date": "2025-03-10", "hours": 7.5}, ...]

  Hours are plain JSON numbers. Every stored value is a multiple of 0.5
  no larger than 24, so float64 represents it exactly.

RESTORE POLICY:
  - Snapshot that is not a JSON array: restore empty, report the error.
  - Individually bad entries (unparseable date, hours violating the
    stored-record invariant, duplicate or out-of-window dates): skipped
    and counted, the rest restore normally.

SEE ALSO:
  - store/store.go: Where the bytes go
  - tracker/tracker.go: Calls Snapshot after every successful mutation
*/
package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// snapshotRecord is the wire form of one DayRecord.
type snapshotRecord struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// Snapshot serializes the full record collection as a single atomic
// JSON array, in insertion order.
func (l *Ledger) Snapshot() ([]byte, error) {
	out := make([]snapshotRecord, len(l.records))
	for i, r := range l.records {
		out[i] = snapshotRecord{Date: r.Date.String(), Hours: r.Hours.InexactFloat64()}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("%w: encode snapshot: %v", ErrStorage, err)
	}
	return data, nil
}

// RestoreSnapshot replaces the record collection with the snapshot's
// contents. Returns the number of entries skipped for violating an
// invariant. A snapshot that cannot be decoded at all leaves the ledger
// empty and returns a non-nil error; callers log it and carry on.
func (l *Ledger) RestoreSnapshot(data []byte) (skipped int, err error) {
	l.records = nil
	if len(data) == 0 {
		return 0, nil
	}

	var raw []snapshotRecord
	if jsonErr := json.Unmarshal(data, &raw); jsonErr != nil {
		return 0, fmt.Errorf("malformed snapshot, restoring empty ledger: %w", jsonErr)
	}

	today := l.now()
	for _, sr := range raw {
		date, parseErr := ParseDate(sr.Date)
		if parseErr != nil {
			skipped++
			continue
		}
		h := decimal.NewFromFloat(sr.Hours)
		if !validHours(h) || !l.window.Contains(date) || date.After(today) || l.find(date) >= 0 {
			skipped++
			continue
		}
		l.records = append(l.records, DayRecord{Date: date, Hours: h})
	}
	return skipped, nil
}
