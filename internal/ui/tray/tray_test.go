package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/require"
)

type stubTrayApp struct {
	fyne.App
	menus []*fyne.Menu
}

func (app *stubTrayApp) SetSystemTrayMenu(menu *fyne.Menu) {
	app.menus = append(app.menus, menu)
}

func (app *stubTrayApp) SetSystemTrayIcon(fyne.Resource) {}

func (app *stubTrayApp) SetSystemTrayWindow(fyne.Window) {}

func TestManagerRunningState(t *testing.T) {
	app := &stubTrayApp{}
	manager := New(app, Callbacks{})
	require.Equal(t, "Start", manager.toggleItem.Label)
	require.True(t, manager.lapItem.Disabled)

	manager.SetRunning(true)
	require.Equal(t, "Stop", manager.toggleItem.Label)
	require.False(t, manager.lapItem.Disabled)
	require.Equal(t, "Lapwatch: stopped (running)", manager.statusItem.Label)

	manager.SetStatus("01:05")
	require.Equal(t, "Lapwatch: 01:05 (running)", manager.statusItem.Label)
	require.NotEmpty(t, app.menus)
}

func TestManagerCallbacks(t *testing.T) {
	var toggled, lapped int
	manager := New(&stubTrayApp{}, Callbacks{
		OnToggle: func() { toggled++ },
		OnLap:    func() { lapped++ },
	})

	manager.toggleItem.Action()
	manager.lapItem.Action()
	manager.resetItem.Action()
	require.Equal(t, 1, toggled)
	require.Equal(t, 1, lapped)
}

func TestManagerSetMode(t *testing.T) {
	manager := New(&stubTrayApp{}, Callbacks{})
	manager.SetMode("Split")
	require.Equal(t, "Split", manager.lapItem.Label)
}
