package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"lapwatch/internal/export"
	"lapwatch/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

const (
	minTickIntervalMs = 1
	maxTickIntervalMs = 1000
)

type yamlSettings struct {
	TickIntervalMs     int    `yaml:"tick_interval_ms"`
	ExportFormat       string `yaml:"export_format"`
	ExportDir          string `yaml:"export_dir"`
	HighlightBestWorst bool   `yaml:"highlight_best_worst"`
	ShowCurrentSplit   bool   `yaml:"show_current_split"`
}

// LoadSettings reads user preferences from dir.
// If the settings file does not exist, default settings are returned.
func LoadSettings(dir string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(filepath.Join(dir, settingsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to dir.
func SaveSettings(dir string, settings preferences.Settings) error {
	fileData := yamlSettings{
		TickIntervalMs:     int(settings.TickInterval / time.Millisecond),
		ExportFormat:       string(settings.ExportFormat),
		ExportDir:          settings.ExportDir,
		HighlightBestWorst: settings.HighlightBestWorst,
		ShowCurrentSplit:   settings.ShowCurrentSplit,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	return writeFileAtomic(filepath.Join(dir, settingsFileName), serialized)
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.TickIntervalMs >= minTickIntervalMs && fileData.TickIntervalMs <= maxTickIntervalMs {
		settings.TickInterval = time.Duration(fileData.TickIntervalMs) * time.Millisecond
	}
	if fileData.ExportFormat != "" {
		settings.ExportFormat = export.ParseFormat(fileData.ExportFormat)
	}

	settings.ExportDir = fileData.ExportDir
	settings.HighlightBestWorst = fileData.HighlightBestWorst
	settings.ShowCurrentSplit = fileData.ShowCurrentSplit
}
