package main

import (
	"fmt"
	"log"
	"path/filepath"

	"lapwatch/internal/config"
	"lapwatch/internal/core/timefmt"
	"lapwatch/internal/core/timekeeper"
	"lapwatch/internal/export"
	"lapwatch/internal/platform"
	"lapwatch/internal/storage"
	"lapwatch/internal/ui/preferences"
	"lapwatch/internal/ui/tray"
	"lapwatch/internal/ui/window"
	"lapwatch/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "Lapwatch"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	cfg := config.Load()
	configDir := cfg.ConfigDir
	if configDir == "" {
		configDir, err = platform.ConfigDir(appName)
		if err != nil {
			log.Printf("config dir: %v", err)
			return
		}
	}

	settings, err := storage.LoadSettings(configDir)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	sessions := storage.NewSessionStore(configDir)
	snapshot, err := sessions.Load()
	if err != nil {
		log.Printf("load session: %v", err)
	}

	keeper := timekeeper.New(cfg.Stopwatch(settings.StopwatchConfig()), timekeeper.WithStore(sessions))
	if err := keeper.Restore(snapshot); err != nil {
		log.Printf("%v", err)
	}
	log.Printf("session %s loaded from %s", keeper.ID(), sessions.Path())

	stoppedIcon := resources.MustIcon(resources.IconStopped)
	runningIcon := resources.MustIcon(resources.IconRunning)

	fyneApp := app.NewWithID("com.lapwatch.app")
	fyneApp.SetIcon(stoppedIcon)

	mainWindow := window.New(fyneApp, keeper, windowOptions(settings))
	mainWindow.SetExportFormat(settings.ExportFormat)
	mainWindow.SetOnExport(func(format export.Format) {
		path, err := export.WriteFile(exportDir(settings, configDir), format, keeper.Marks(), keeper.Precision())
		if err != nil {
			log.Printf("export %s: %v", format, err)
			mainWindow.ShowError(err)
			return
		}
		mainWindow.ShowInfo("Export complete", fmt.Sprintf("Saved %s", path))
	})

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := storage.SaveSettings(configDir, settings); err != nil {
			log.Printf("save settings: %v", err)
		}
		keeper.UpdateConfig(cfg.Stopwatch(settings.StopwatchConfig()))
		mainWindow.UpdateOptions(windowOptions(settings))
		mainWindow.SetExportFormat(settings.ExportFormat)
	})

	quit := func() {
		keeper.Close()
		fyneApp.Quit()
	}

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        mainWindow.Show,
			OnToggle:      keeper.Toggle,
			OnLap:         func() { keeper.Lap() },
			OnReset:       keeper.Reset,
			OnPreferences: prefsWindow.Show,
			OnQuit:        quit,
		})
		desktopApp.SetSystemTrayIcon(stoppedIcon)
		mainWindow.SetOnClose(mainWindow.Hide)
	} else {
		log.Printf("system tray unsupported on this platform")
		mainWindow.SetOnClose(quit)
	}

	events := keeper.Subscribe(16)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				handleEvent(event, mainWindow, trayManager, desktopApp, stoppedIcon, runningIcon)
			})
		}
	}()

	mainWindow.Show()
	fyneApp.Run()
	keeper.Close()
}

func handleEvent(event timekeeper.Event, mainWindow *window.Window, trayManager *tray.Manager, desktopApp desktop.App, stoppedIcon, runningIcon fyne.Resource) {
	switch event.Type {
	case timekeeper.EventProgress:
		mainWindow.SetTime(event.Elapsed, event.Split)
	default:
		mainWindow.Refresh()
	}

	if trayManager == nil {
		return
	}
	running := event.State == timekeeper.StateRunning
	trayManager.SetRunning(running)
	trayManager.SetMode(event.Mode.Label())
	trayManager.SetStatus(timefmt.FormatShort(event.Elapsed))
	if event.Type == timekeeper.EventStateChange || event.Type == timekeeper.EventReset {
		if running {
			desktopApp.SetSystemTrayIcon(runningIcon)
		} else {
			desktopApp.SetSystemTrayIcon(stoppedIcon)
		}
	}
}

func windowOptions(settings preferences.Settings) window.Options {
	return window.Options{
		HighlightBestWorst: settings.HighlightBestWorst,
		ShowCurrentSplit:   settings.ShowCurrentSplit,
	}
}

func exportDir(settings preferences.Settings, configDir string) string {
	if settings.ExportDir != "" {
		return settings.ExportDir
	}
	return filepath.Join(configDir, "exports")
}
