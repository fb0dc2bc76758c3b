package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"lapwatch/internal/export"
)

// Window handles the preferences UI.
type Window struct {
	window       fyne.Window
	settings     Settings
	onSave       func(Settings)
	tickInterval *widget.Entry
	exportFormat *widget.Select
	exportDir    *widget.Entry
	highlight    *widget.Check
	showSplit    *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Lapwatch Settings")

	tickInterval := widget.NewEntry()
	formats := make([]string, 0, len(export.Formats))
	for _, format := range export.Formats {
		formats = append(formats, string(format))
	}
	exportFormat := widget.NewSelect(formats, nil)
	exportDir := widget.NewEntry()
	exportDir.SetPlaceHolder("default: next to settings")
	highlight := widget.NewCheck("Highlight best and worst times", nil)
	showSplit := widget.NewCheck("Show current lap/split while running", nil)

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		tickInterval: tickInterval,
		exportFormat: exportFormat,
		exportDir:    exportDir,
		highlight:    highlight,
		showSplit:    showSplit,
	}
	prefs.UpdateSettings(settings)

	browseButton := widget.NewButton("Browse...", func() {
		dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
			if err != nil || dir == nil {
				return
			}
			exportDir.SetText(dir.Path())
		}, window)
	})

	form := container.NewVBox(
		widget.NewLabelWithStyle("Display", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Refresh every"), tickInterval, widget.NewLabel("ms")),
		highlight,
		showSplit,
		widget.NewLabelWithStyle("Export", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Default format"), exportFormat),
		container.NewBorder(nil, nil, widget.NewLabel("Folder"), browseButton, exportDir),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 320))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.tickInterval.SetText(fmt.Sprintf("%d", int(settings.TickInterval/time.Millisecond)))
	prefs.exportFormat.SetSelected(string(settings.ExportFormat))
	prefs.exportDir.SetText(settings.ExportDir)
	prefs.highlight.SetChecked(settings.HighlightBestWorst)
	prefs.showSplit.SetChecked(settings.ShowCurrentSplit)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if millis, ok := parsePositiveInt(prefs.tickInterval.Text); ok && millis <= 1000 {
		settings.TickInterval = time.Duration(millis) * time.Millisecond
	}
	settings.ExportFormat = export.ParseFormat(prefs.exportFormat.Selected)
	settings.ExportDir = prefs.exportDir.Text
	settings.HighlightBestWorst = prefs.highlight.Checked
	settings.ShowCurrentSplit = prefs.showSplit.Checked

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
