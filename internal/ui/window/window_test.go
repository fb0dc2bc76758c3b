package window

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/require"

	"lapwatch/internal/core/ledger"
	"lapwatch/internal/core/model"
	"lapwatch/internal/core/timekeeper"
	"lapwatch/internal/export"
)

var (
	_ Controller = (*timekeeper.TimeKeeper)(nil)
	_ Controller = (*stubController)(nil)
)

type stubController struct {
	now       time.Time
	tracker   timekeeper.Tracker
	ledger    *ledger.Ledger
	precision model.Precision
}

func newStubController() *stubController {
	return &stubController{
		now:       time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC),
		ledger:    ledger.New(model.ModeLap),
		precision: model.PrecisionMilliseconds,
	}
}

func (c *stubController) advance(d time.Duration) { c.now = c.now.Add(d) }

func (c *stubController) Toggle() {
	if c.tracker.Running() {
		c.tracker.Stop(c.now)
		return
	}
	c.tracker.Start(c.now)
}

func (c *stubController) Lap() (model.Mark, bool) {
	if !c.tracker.Running() {
		return model.Mark{}, false
	}
	return c.ledger.Record(c.tracker.Tick(c.now)), true
}

func (c *stubController) Reset() {
	c.tracker.Reset()
	c.ledger.Clear()
}

func (c *stubController) ClearMarks() { c.ledger.Clear() }

func (c *stubController) SetMode(mode model.Mode) {
	c.ledger.SetMode(mode, c.tracker.Running(), c.tracker.Tick(c.now))
}

func (c *stubController) SetPrecision(precision model.Precision) {
	c.precision = precision
}

func (c *stubController) Running() bool {
	return c.tracker.Running()
}

func (c *stubController) Elapsed() time.Duration {
	return c.tracker.Sample(c.now)
}

func (c *stubController) CurrentSplit() time.Duration {
	return c.ledger.CurrentSplit(c.tracker.Sample(c.now))
}

func (c *stubController) Mode() model.Mode {
	return c.ledger.Mode()
}

func (c *stubController) Precision() model.Precision {
	return c.precision
}

func (c *stubController) Marks() []model.Mark {
	return c.ledger.Marks()
}

func (c *stubController) Statistics() (model.Statistics, bool) {
	return c.ledger.Statistics()
}

func newTestWindow(t *testing.T) (*Window, *stubController) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)
	// The test theme has no bold monospace font.
	app.Settings().SetTheme(theme.DefaultTheme())
	controller := newStubController()
	return New(app, controller, Options{HighlightBestWorst: true, ShowCurrentSplit: true}), controller
}

func TestWindowInitialState(t *testing.T) {
	win, _ := newTestWindow(t)

	require.Equal(t, "00:00:00.000", win.timeText.Text)
	require.Equal(t, "Start", win.startButton.Text)
	require.True(t, win.lapButton.Disabled())
	require.True(t, win.resetButton.Disabled())
	require.True(t, win.exportButton.Disabled())
	require.Contains(t, win.emptyLabel.Text, "press Lap")
}

func TestWindowStartLapStop(t *testing.T) {
	win, controller := newTestWindow(t)

	test.Tap(win.startButton)
	require.Equal(t, "Stop", win.startButton.Text)
	require.False(t, win.lapButton.Disabled())

	controller.advance(1200 * time.Millisecond)
	test.Tap(win.lapButton)
	controller.advance(800 * time.Millisecond)
	win.handleKey(&fyne.KeyEvent{Name: fyne.KeyL})

	require.Len(t, win.rows, 2)
	require.Equal(t, "#2", win.rows[1].Number)
	require.Equal(t, "00:00:00.800", win.rows[1].Time)
	require.Equal(t, "-00:00:00.400", win.rows[1].Diff)
	require.Equal(t, highlightBest, win.rows[1].Highlight)
	require.Equal(t, highlightWorst, win.rows[0].Highlight)
	require.Contains(t, win.statsLabel.Text, "Average 00:00:01.000")

	win.handleKey(&fyne.KeyEvent{Name: fyne.KeySpace})
	require.Equal(t, "Start", win.startButton.Text)
	require.Equal(t, "00:00:02.000", win.timeText.Text)
	require.Empty(t, win.splitText.Text)
}

func TestWindowModeAndPrecision(t *testing.T) {
	win, controller := newTestWindow(t)

	win.modeGroup.SetSelected(model.ModeSplit.Label())
	require.Equal(t, model.ModeSplit, controller.Mode())
	require.Equal(t, "Split", win.lapButton.Text)

	win.precisionSelect.SetSelected("Centiseconds")
	require.Equal(t, model.PrecisionCentiseconds, controller.Precision())
	require.Equal(t, "00:00:00.00", win.timeText.Text)
}

func TestWindowResetAndClear(t *testing.T) {
	win, controller := newTestWindow(t)
	test.Tap(win.startButton)
	controller.advance(time.Second)
	test.Tap(win.lapButton)

	test.Tap(win.clearButton)
	require.Empty(t, win.rows)
	require.True(t, win.clearButton.Disabled())
	require.False(t, win.resetButton.Disabled())

	win.handleKey(&fyne.KeyEvent{Name: fyne.KeyR})
	require.False(t, controller.Running())
	require.Equal(t, "00:00:00.000", win.timeText.Text)
	require.True(t, win.resetButton.Disabled())
}

func TestWindowExportUsesSelectedFormat(t *testing.T) {
	win, controller := newTestWindow(t)
	var exported export.Format
	win.SetOnExport(func(format export.Format) { exported = format })

	test.Tap(win.startButton)
	controller.advance(time.Second)
	test.Tap(win.lapButton)

	win.SetExportFormat(export.FormatJSON)
	test.Tap(win.exportButton)
	require.Equal(t, export.FormatJSON, exported)
}

func TestUpdateRowItemStylesHighlightedRows(t *testing.T) {
	newTestWindow(t)
	item := container.NewHBox(widget.NewLabel(""), widget.NewLabel(""), layout.NewSpacer(), widget.NewLabel(""))

	updateRowItem(item, resultRow{Number: "#1", Time: "00:00:01.000", Diff: "+00:00:00.200", Slower: true, Highlight: highlightWorst})
	timeLabel := item.Objects[1].(*widget.Label)
	diff := item.Objects[3].(*widget.Label)
	require.Equal(t, "00:00:01.000", timeLabel.Text)
	require.Equal(t, widget.DangerImportance, timeLabel.Importance)
	require.True(t, timeLabel.TextStyle.Bold)
	require.Equal(t, widget.WarningImportance, diff.Importance)

	updateRowItem(item, resultRow{Number: "#2", Time: "00:00:00.800", Diff: "-00:00:00.200", Highlight: highlightBest})
	require.Equal(t, widget.SuccessImportance, timeLabel.Importance)
	require.Equal(t, widget.SuccessImportance, diff.Importance)

	updateRowItem(item, resultRow{Number: "#3", Time: "00:00:00.900"})
	require.Equal(t, widget.MediumImportance, timeLabel.Importance)
	require.False(t, timeLabel.TextStyle.Bold)
}

func TestBuildRowsSkipsHighlightForSingleMark(t *testing.T) {
	book := ledger.New(model.ModeLap)
	book.Record(time.Second)
	stats, _ := book.Statistics()

	rows := buildRows(book.Marks(), model.PrecisionMilliseconds, stats, true)
	require.Equal(t, highlightNone, rows[0].Highlight)
	require.Empty(t, rows[0].Diff)
}

func TestBuildRowsHighlightDisabled(t *testing.T) {
	book := ledger.New(model.ModeLap)
	book.Record(time.Second)
	book.Record(3 * time.Second)
	stats, _ := book.Statistics()

	rows := buildRows(book.Marks(), model.PrecisionMilliseconds, stats, false)
	require.Equal(t, highlightNone, rows[0].Highlight)
	require.Equal(t, highlightNone, rows[1].Highlight)
	require.True(t, rows[1].Slower)
}

func TestStatsTextEmpty(t *testing.T) {
	require.Empty(t, statsText(model.Statistics{}, false, model.PrecisionMilliseconds))
}
