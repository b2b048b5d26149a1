package export

import (
	"context"
	"image/png"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally/hours-engine/ledger"
	"github.com/tally/hours-engine/store"
	"github.com/tally/hours-engine/tracker"
)

var testToday = ledger.NewDate(2025, time.June, 15)

func newTestService(t *testing.T) (*Service, *tracker.Tracker) {
	t.Helper()
	l := ledger.NewWithClock(ledger.YearWindow(2025), func() ledger.Date { return testToday })
	tr := tracker.New(l, store.NewMemory())
	return New(tr, t.TempDir()), tr
}

func TestExport_ProducesCardAndSummary(t *testing.T) {
	// GIVEN: Hours logged across two months
	svc, tr := newTestService(t)
	ctx := context.Background()
	require.NoError(t, tr.SetHours(ctx, ledger.NewDate(2025, time.March, 10), 7.5))
	require.NoError(t, tr.SetHours(ctx, testToday, 3))

	// WHEN: Exporting
	result, err := svc.Export(ctx)
	require.NoError(t, err)

	// THEN: The summary carries the yearly and current-month totals
	assert.Equal(t, "10.5 hours of coding in 2025, 3 in June", result.Summary)

	// AND: The artifact is a PNG with the fixed card dimensions
	f, err := os.Open(result.Path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, CardWidth, img.Bounds().Dx())
	assert.Equal(t, CardHeight, img.Bounds().Dy())
}

func TestExport_EmptyLedgerStillRenders(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Export(context.Background())

	require.NoError(t, err)
	assert.FileExists(t, result.Path)
	assert.Equal(t, "0 hours of coding in 2025, 0 in June", result.Summary)
}

func TestExport_SecondExportGetsFreshArtifact(t *testing.T) {
	// ULID-named artifacts never collide; each export is a new file.
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Export(ctx)
	require.NoError(t, err)
	second, err := svc.Export(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
	assert.FileExists(t, first.Path)
	assert.FileExists(t, second.Path)
}

func TestExport_ExclusiveWhileInFlight(t *testing.T) {
	// Only one export at a time: a concurrent request fails fast rather
	// than racing the rasterization in progress.
	svc, _ := newTestService(t)

	require.True(t, svc.inFlight.CompareAndSwap(false, true), "simulate an export in flight")
	_, err := svc.Export(context.Background())
	assert.ErrorIs(t, err, ErrExportInFlight)

	svc.inFlight.Store(false)
	_, err = svc.Export(context.Background())
	assert.NoError(t, err, "exports resume once the first finishes")
}

func TestExport_UnwritableDirIsStorageError(t *testing.T) {
	l := ledger.NewWithClock(ledger.YearWindow(2025), func() ledger.Date { return testToday })
	tr := tracker.New(l, store.NewMemory())
	svc := New(tr, string([]byte{0}))

	_, err := svc.Export(context.Background())

	assert.ErrorIs(t, err, ledger.ErrStorage)
}
