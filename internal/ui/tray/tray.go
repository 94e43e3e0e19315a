package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"littlepomo/internal/core/session"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnSkip        func()
	OnMode        func(session.Mode)
	OnPreferences func()
	OnQuit        func()
}

// MenuSetter is satisfied by desktop.App.
type MenuSetter interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Manager handles system tray state.
type Manager struct {
	app        MenuSetter
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	modeItems  map[session.Mode]*fyne.MenuItem
	menu       *fyne.Menu
	status     string
}

// New creates a tray manager with the provided callbacks.
func New(app MenuSetter, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		modeItems: make(map[session.Mode]*fyne.MenuItem, 3),
		status:    "Status: ready",
	}

	manager.statusItem = fyne.NewMenuItem(manager.status, nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() { call(manager.callbacks.OnToggle) })

	modeItems := make([]*fyne.MenuItem, 0, 3)
	for _, mode := range session.Modes() {
		item := fyne.NewMenuItem(mode.Label(), func() {
			if manager.callbacks.OnMode != nil {
				manager.callbacks.OnMode(mode)
			}
		})
		manager.modeItems[mode] = item
		modeItems = append(modeItems, item)
	}
	modeMenu := fyne.NewMenuItem("Mode", nil)
	modeMenu.ChildMenu = fyne.NewMenu("", modeItems...)

	manager.menu = fyne.NewMenu("Little Pomo",
		manager.statusItem,
		fyne.NewMenuItem("Show", func() { call(manager.callbacks.OnShow) }),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) }),
		fyne.NewMenuItem("Skip", func() { call(manager.callbacks.OnSkip) }),
		modeMenu,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings", func() { call(manager.callbacks.OnPreferences) }),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	)
	app.SetSystemTrayMenu(manager.menu)

	return manager
}

// Update reflects the timer state in the menu. Must run on the fyne goroutine.
func (manager *Manager) Update(mode session.Mode, running bool, remainingWhole int) {
	manager.status = StatusLabel(mode, running, remainingWhole)
	manager.statusItem.Label = manager.status
	if running {
		manager.toggleItem.Label = "Pause"
	} else {
		manager.toggleItem.Label = "Start"
	}
	for itemMode, item := range manager.modeItems {
		item.Checked = itemMode == mode
	}
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.status
}

// StatusLabel is the tray status line.
func StatusLabel(mode session.Mode, running bool, remainingWhole int) string {
	if remainingWhole < 0 {
		remainingWhole = 0
	}
	state := "paused"
	if running {
		state = "running"
	}
	return fmt.Sprintf("%s %02d:%02d (%s)", mode.Label(), remainingWhole/60, remainingWhole%60, state)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
