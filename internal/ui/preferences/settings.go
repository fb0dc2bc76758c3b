package preferences

import (
	"time"

	"lapwatch/internal/core/model"
	"lapwatch/internal/export"
)

// Settings defines editable user preferences.
type Settings struct {
	TickInterval time.Duration

	ExportFormat export.Format
	// ExportDir is where export files are written. Empty means the
	// exports directory next to the settings file.
	ExportDir string

	HighlightBestWorst bool
	ShowCurrentSplit   bool
}

// DefaultSettings returns default settings for Lapwatch.
func DefaultSettings() Settings {
	return Settings{
		TickInterval:       10 * time.Millisecond,
		ExportFormat:       export.FormatCSV,
		HighlightBestWorst: true,
		ShowCurrentSplit:   true,
	}
}

// StopwatchConfig converts settings to StopwatchConfig.
func (settings Settings) StopwatchConfig() model.StopwatchConfig {
	return model.StopwatchConfig{
		TickInterval: settings.TickInterval,
	}
}
