package tray

import (
	"fmt"
	"time"

	"restie/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "Restie"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnPreferences func()
	OnTogglePause func()
	OnSkipBreak   func()
	OnPostpone    func()
	OnPauseFor    func(time.Duration)
	OnBreakNow    func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app          desktop.App
	statusItem   *fyne.MenuItem
	pauseItem    *fyne.MenuItem
	skipItem     *fyne.MenuItem
	postponeItem *fyne.MenuItem
	pauseFor     *fyne.MenuItem
	breakNow     *fyne.MenuItem
	callbacks    Callbacks
	paused       bool
	inBreak      bool
	statusLabel  string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "starting...",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.pauseFor = fyne.NewMenuItem("Disable breaks for...", nil)
	manager.pauseFor.ChildMenu = fyne.NewMenu("",
		manager.pauseForItem(15*time.Minute),
		manager.pauseForItem(30*time.Minute),
		manager.pauseForItem(60*time.Minute),
	)

	manager.breakNow = fyne.NewMenuItem("Take a break now", func() {
		invoke(manager.callbacks.OnBreakNow)
	})

	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		invoke(manager.callbacks.OnTogglePause)
	})

	manager.skipItem = fyne.NewMenuItem("Skip break", func() {
		invoke(manager.callbacks.OnSkipBreak)
	})
	manager.skipItem.Disabled = true

	manager.postponeItem = fyne.NewMenuItem("Postpone 5 minutes", func() {
		invoke(manager.callbacks.OnPostpone)
	})

	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetSchedule renders the pending break into the status label.
func (manager *Manager) SetSchedule(schedule model.SchedulerState, now time.Time) {
	manager.SetStatus(StatusText(schedule, now))
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	manager.paused = paused
	if paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshStatus()
}

// SetInBreak toggles break-related menu items.
func (manager *Manager) SetInBreak(inBreak bool) {
	manager.inBreak = inBreak
	manager.skipItem.Disabled = !inBreak
	manager.breakNow.Disabled = inBreak
	manager.refreshMenu()
}

// StatusText describes the next break, e.g. "Next: Microbreak in 4m 3s".
func StatusText(schedule model.SchedulerState, now time.Time) string {
	if !schedule.Scheduled() {
		return "No break scheduled"
	}
	return fmt.Sprintf("Next: %s in %s", schedule.CurrentBreakType.Label(), FormatTimeLeft(schedule.TimeLeftAt(now)))
}

// FormatTimeLeft renders a remaining duration compactly.
func FormatTimeLeft(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	totalSeconds := int64(remaining / time.Second)
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60

	switch {
	case minutes > 60:
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

func (manager *Manager) pauseForItem(duration time.Duration) *fyne.MenuItem {
	return fyne.NewMenuItem(fmt.Sprintf("%d minutes", int(duration.Minutes())), func() {
		if manager.callbacks.OnPauseFor != nil {
			manager.callbacks.OnPauseFor(duration)
		}
	})
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = status
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.breakNow,
		manager.pauseItem,
		manager.pauseFor,
		manager.postponeItem,
		manager.skipItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences...", func() {
			invoke(manager.callbacks.OnPreferences)
		}),
		fyne.NewMenuItem("Quit", func() {
			invoke(manager.callbacks.OnQuit)
		}),
	))
}

func invoke(callback func()) {
	if callback != nil {
		callback()
	}
}
