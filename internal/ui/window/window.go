package window

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"lapwatch/internal/core/model"
	"lapwatch/internal/core/timefmt"
	"lapwatch/internal/export"
)

// Controller is the stopwatch session the window drives.
type Controller interface {
	Toggle()
	Lap() (model.Mark, bool)
	Reset()
	ClearMarks()
	SetMode(mode model.Mode)
	SetPrecision(precision model.Precision)
	Running() bool
	Elapsed() time.Duration
	CurrentSplit() time.Duration
	Mode() model.Mode
	Precision() model.Precision
	Marks() []model.Mark
	Statistics() (model.Statistics, bool)
}

// Options defines display toggles.
type Options struct {
	HighlightBestWorst bool
	ShowCurrentSplit   bool
}

var precisionLabels = []struct {
	precision model.Precision
	label     string
}{
	{model.PrecisionMilliseconds, "Milliseconds"},
	{model.PrecisionCentiseconds, "Centiseconds"},
	{model.PrecisionSeconds, "Seconds"},
}

// Window is the main stopwatch window.
type Window struct {
	window     fyne.Window
	controller Controller
	options    Options

	timeText        *canvas.Text
	splitText       *canvas.Text
	startButton     *widget.Button
	lapButton       *widget.Button
	resetButton     *widget.Button
	clearButton     *widget.Button
	exportButton    *widget.Button
	modeGroup       *widget.RadioGroup
	precisionSelect *widget.Select
	exportSelect    *widget.Select
	results         *widget.List
	emptyLabel      *widget.Label
	statsLabel      *widget.Label

	rows     []resultRow
	syncing  bool
	onExport func(export.Format)
}

// New creates the main window.
func New(app fyne.App, controller Controller, options Options) *Window {
	window := app.NewWindow("Lapwatch")
	win := &Window{
		window:     window,
		controller: controller,
		options:    options,
	}

	win.timeText = canvas.NewText("00:00:00.000", theme.Color(theme.ColorNameForeground))
	win.timeText.Alignment = fyne.TextAlignCenter
	win.timeText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	win.timeText.TextSize = 44

	win.splitText = canvas.NewText("", theme.Color(theme.ColorNamePlaceHolder))
	win.splitText.Alignment = fyne.TextAlignCenter
	win.splitText.TextStyle = fyne.TextStyle{Monospace: true}
	win.splitText.TextSize = 18

	win.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), win.handleToggle)
	win.startButton.Importance = widget.HighImportance
	win.lapButton = widget.NewButtonWithIcon("Lap", theme.ContentAddIcon(), win.handleLap)
	win.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), win.handleReset)

	win.modeGroup = widget.NewRadioGroup([]string{model.ModeLap.Label(), model.ModeSplit.Label()}, win.handleMode)
	win.modeGroup.Horizontal = true
	win.modeGroup.Required = true

	labels := make([]string, 0, len(precisionLabels))
	for _, entry := range precisionLabels {
		labels = append(labels, entry.label)
	}
	win.precisionSelect = widget.NewSelect(labels, win.handlePrecision)

	formats := make([]string, 0, len(export.Formats))
	for _, format := range export.Formats {
		formats = append(formats, string(format))
	}
	win.exportSelect = widget.NewSelect(formats, nil)
	win.exportSelect.SetSelected(string(export.FormatCSV))
	win.exportButton = widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), win.handleExport)
	win.clearButton = widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), win.handleClear)

	win.results = widget.NewList(
		func() int { return len(win.rows) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewLabel("#000"), widget.NewLabel("00:00:00.000"), layout.NewSpacer(), widget.NewLabel(""))
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < 0 || id >= len(win.rows) {
				return
			}
			updateRowItem(item.(*fyne.Container), win.rows[id])
		},
	)
	win.emptyLabel = widget.NewLabel("")
	win.emptyLabel.Wrapping = fyne.TextWrapWord
	win.emptyLabel.Alignment = fyne.TextAlignCenter
	win.statsLabel = widget.NewLabel("")

	header := container.NewVBox(
		win.timeText,
		win.splitText,
		container.NewGridWithColumns(3, win.startButton, win.lapButton, win.resetButton),
		container.NewHBox(win.modeGroup, layout.NewSpacer(), win.precisionSelect),
		widget.NewSeparator(),
	)
	footer := container.NewVBox(
		win.statsLabel,
		container.NewHBox(win.clearButton, layout.NewSpacer(), win.exportSelect, win.exportButton),
	)
	body := container.NewStack(win.results, container.NewCenter(win.emptyLabel))
	window.SetContent(container.NewBorder(header, footer, nil, nil, body))
	window.Resize(fyne.NewSize(440, 560))
	window.Canvas().SetOnTypedKey(win.handleKey)

	win.Refresh()
	return win
}

// SetOnExport registers the export handler.
func (win *Window) SetOnExport(onExport func(export.Format)) {
	win.onExport = onExport
}

// SetOnClose replaces the default close behaviour.
func (win *Window) SetOnClose(onClose func()) {
	win.window.SetCloseIntercept(onClose)
}

// SetExportFormat selects the default export format.
func (win *Window) SetExportFormat(format export.Format) {
	win.exportSelect.SetSelected(string(format))
}

// UpdateOptions applies new display toggles.
func (win *Window) UpdateOptions(options Options) {
	win.options = options
	win.Refresh()
}

// Show displays the window.
func (win *Window) Show() {
	win.window.Show()
	win.window.RequestFocus()
}

// Hide hides the window.
func (win *Window) Hide() {
	win.window.Hide()
}

// ShowInfo displays a message dialog on top of the window.
func (win *Window) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, win.window)
}

// ShowError displays an error dialog on top of the window.
func (win *Window) ShowError(err error) {
	dialog.ShowError(err, win.window)
}

// SetTime redraws the clock faces only.
func (win *Window) SetTime(elapsed, split time.Duration) {
	precision := win.controller.Precision()
	win.timeText.Text = timefmt.Format(elapsed, precision)
	win.timeText.Refresh()

	if win.options.ShowCurrentSplit && win.controller.Running() {
		win.splitText.Text = win.controller.Mode().Label() + " " + timefmt.Format(split, precision)
	} else {
		win.splitText.Text = ""
	}
	win.splitText.Refresh()
}

// Refresh re-reads the whole session state.
func (win *Window) Refresh() {
	win.syncing = true
	defer func() { win.syncing = false }()

	running := win.controller.Running()
	mode := win.controller.Mode()
	precision := win.controller.Precision()
	marks := win.controller.Marks()
	stats, ok := win.controller.Statistics()

	win.SetTime(win.controller.Elapsed(), win.controller.CurrentSplit())

	if running {
		win.startButton.SetText("Stop")
		win.startButton.SetIcon(theme.MediaPauseIcon())
		win.lapButton.Enable()
	} else {
		win.startButton.SetText("Start")
		win.startButton.SetIcon(theme.MediaPlayIcon())
		win.lapButton.Disable()
	}
	win.lapButton.SetText(mode.Label())

	if running || win.controller.Elapsed() > 0 || len(marks) > 0 {
		win.resetButton.Enable()
	} else {
		win.resetButton.Disable()
	}
	if len(marks) > 0 {
		win.clearButton.Enable()
		win.exportButton.Enable()
	} else {
		win.clearButton.Disable()
		win.exportButton.Disable()
	}

	win.modeGroup.SetSelected(mode.Label())
	win.precisionSelect.SetSelected(labelForPrecision(precision))

	win.rows = buildRows(marks, precision, stats, win.options.HighlightBestWorst)
	win.results.Refresh()
	if len(marks) > 0 {
		win.results.ScrollToBottom()
		win.emptyLabel.Hide()
	} else {
		win.emptyLabel.SetText(emptyHint(mode))
		win.emptyLabel.Show()
	}
	win.statsLabel.SetText(statsText(stats, ok, precision))
}

func (win *Window) handleToggle() {
	win.controller.Toggle()
	win.Refresh()
}

func (win *Window) handleLap() {
	if _, ok := win.controller.Lap(); ok {
		win.Refresh()
	}
}

func (win *Window) handleReset() {
	win.controller.Reset()
	win.Refresh()
}

func (win *Window) handleClear() {
	win.controller.ClearMarks()
	win.Refresh()
}

func (win *Window) handleMode(label string) {
	if win.syncing {
		return
	}
	mode := model.ModeLap
	if label == model.ModeSplit.Label() {
		mode = model.ModeSplit
	}
	win.controller.SetMode(mode)
	win.Refresh()
}

func (win *Window) handlePrecision(label string) {
	if win.syncing {
		return
	}
	for _, entry := range precisionLabels {
		if entry.label == label {
			win.controller.SetPrecision(entry.precision)
			break
		}
	}
	win.Refresh()
}

func (win *Window) handleExport() {
	if win.onExport != nil {
		win.onExport(export.ParseFormat(win.exportSelect.Selected))
	}
}

func (win *Window) handleKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeySpace:
		win.handleToggle()
	case fyne.KeyL:
		win.handleLap()
	case fyne.KeyR:
		win.handleReset()
	}
}

func labelForPrecision(precision model.Precision) string {
	for _, entry := range precisionLabels {
		if entry.precision == precision {
			return entry.label
		}
	}
	return precisionLabels[0].label
}

func updateRowItem(item *fyne.Container, row resultRow) {
	number := item.Objects[0].(*widget.Label)
	timeLabel := item.Objects[1].(*widget.Label)
	diff := item.Objects[3].(*widget.Label)

	number.SetText(row.Number)
	timeLabel.SetText(row.Time)
	diff.SetText(row.Diff)

	switch row.Highlight {
	case highlightBest:
		timeLabel.Importance = widget.SuccessImportance
	case highlightWorst:
		timeLabel.Importance = widget.DangerImportance
	default:
		timeLabel.Importance = widget.MediumImportance
	}
	timeLabel.TextStyle = fyne.TextStyle{Monospace: true, Bold: row.Highlight != highlightNone}
	if row.Slower {
		diff.Importance = widget.WarningImportance
	} else {
		diff.Importance = widget.SuccessImportance
	}
	timeLabel.Refresh()
	diff.Refresh()
}
