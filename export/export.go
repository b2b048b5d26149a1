/*
Package export renders the shareable summary of the tracked year.

PURPOSE:
  Produces the two artifacts the sharing target needs: a fixed-size PNG
  summary card (yearly total, current-month total, one bar per month)
  and a textual summary string. Rasterization failures and file-write
  failures surface as a single storage error; they are reported to the
  user, never retried automatically.

EXCLUSIVITY:
  Only one export may be in flight at a time. A second concurrent call
  fails fast with ErrExportInFlight instead of racing the first.

ARTIFACTS:
  Written to the configured directory as summary-<ULID>.png. ULIDs are
  sortable by creation time, so the newest artifact is always last.

SEE ALSO:
  - tracker/tracker.go: The aggregate reads backing the card
  - api/handlers.go: POST /api/export
*/
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tally/hours-engine/ledger"
	"github.com/tally/hours-engine/tracker"
)

// ErrExportInFlight is returned when an export is requested while a
// previous one is still running.
var ErrExportInFlight = errors.New("export already in flight")

// Card dimensions. Fixed: the sharing target expects a stable size.
const (
	CardWidth  = 840
	CardHeight = 440
)

var (
	colBackground = color.RGBA{R: 0x12, G: 0x16, B: 0x20, A: 0xff}
	colBar        = color.RGBA{R: 0x3e, G: 0xb4, B: 0x89, A: 0xff}
	colBarCurrent = color.RGBA{R: 0x6c, G: 0xd9, B: 0xae, A: 0xff}
	colText       = color.RGBA{R: 0xe8, G: 0xec, B: 0xf1, A: 0xff}
	colSubtle     = color.RGBA{R: 0x8a, G: 0x93, B: 0xa3, A: 0xff}
)

// Result is what an export hands to the sharing target.
type Result struct {
	Path    string `json:"path"`
	Summary string `json:"summary"`
}

// Service rasterizes the current ledger state to a summary card.
type Service struct {
	tracker  *tracker.Tracker
	dir      string
	inFlight atomic.Bool
}

func New(t *tracker.Tracker, dir string) *Service {
	return &Service{tracker: t, dir: dir}
}

// Export renders and writes the summary card. Fails fast with
// ErrExportInFlight if another export has not finished yet.
func (s *Service) Export(ctx context.Context) (Result, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrExportInFlight
	}
	defer s.inFlight.Store(false)

	today := s.tracker.Today()
	year := s.tracker.Window().Start.Year
	total := s.tracker.TotalHours().InexactFloat64()
	monthTotal := s.tracker.HoursInMonth(today.Year, today.Month).InexactFloat64()

	var months [12]float64
	for m := time.January; m <= time.December; m++ {
		months[m-1] = s.tracker.HoursInMonth(year, m).InexactFloat64()
	}

	summary := fmt.Sprintf("%s hours of coding in %d, %s in %s",
		humanize.CommafWithDigits(total, 1), year,
		humanize.CommafWithDigits(monthTotal, 1), today.Month.String())

	img := renderCard(year, today, months, total, monthTotal)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("%w: export dir: %v", ledger.ErrStorage, err)
	}
	path := filepath.Join(s.dir, "summary-"+ulid.Make().String()+".png")
	f, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: create artifact: %v", ledger.ErrStorage, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return Result{}, fmt.Errorf("%w: encode artifact: %v", ledger.ErrStorage, err)
	}

	return Result{Path: path, Summary: summary}, nil
}

// =============================================================================
// RASTERIZATION
// =============================================================================

func renderCard(year int, today ledger.Date, months [12]float64, total, monthTotal float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, CardWidth, CardHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(colBackground), image.Point{}, draw.Src)

	drawText(img, 40, 56, colText, fmt.Sprintf("Coding hours %d", year))
	drawText(img, 40, 92, colSubtle, fmt.Sprintf("Total: %s h", humanize.CommafWithDigits(total, 1)))
	drawText(img, 40, 114, colSubtle, fmt.Sprintf("%s: %s h", today.Month.String(), humanize.CommafWithDigits(monthTotal, 1)))

	drawBars(img, today, months)
	return img
}

// drawBars lays out twelve month bars across the lower half of the card,
// scaled to the busiest month. The current month gets the highlight color.
func drawBars(img *image.RGBA, today ledger.Date, months [12]float64) {
	const (
		chartLeft   = 40
		chartTop    = 150
		chartBottom = CardHeight - 50
		barGap      = 14
	)
	chartWidth := CardWidth - 2*chartLeft
	barWidth := (chartWidth - 11*barGap) / 12
	chartHeight := chartBottom - chartTop

	max := 0.0
	for _, v := range months {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1 // empty ledger still renders a flat chart
	}

	for i, v := range months {
		h := int(float64(chartHeight) * v / max)
		if v > 0 && h < 2 {
			h = 2 // a logged month is never invisible
		}
		x := chartLeft + i*(barWidth+barGap)
		c := colBar
		if time.Month(i+1) == today.Month {
			c = colBarCurrent
		}
		bar := image.Rect(x, chartBottom-h, x+barWidth, chartBottom)
		draw.Draw(img, bar, image.NewUniform(c), image.Point{}, draw.Src)
		drawText(img, x, chartBottom+24, colSubtle, time.Month(i+1).String()[:3])
	}
}

func drawText(img *image.RGBA, x, y int, c color.Color, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
