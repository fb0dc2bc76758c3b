package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the per-user directory holding appName's files.
// It prefers the OS configuration directory and falls back to ~/.config.
func ConfigDir(appName string) (string, error) {
	name := dirName(appName)

	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return filepath.Join(configDir, name), nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}
	return filepath.Join(homeDir, ".config", name), nil
}

func dirName(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "lapwatch"
	}
	return strings.ReplaceAll(name, " ", "-")
}
