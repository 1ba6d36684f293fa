package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"timeflo/internal/core/timekeeper"
)

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnTogglePause func()
	OnAcknowledge func()
	OnSkip        func()
	OnCancel      func()
	OnPreferences func()
	OnQuit        func()
}

// Icons holds the tray icon per timer situation.
type Icons struct {
	Task   fyne.Resource
	Break  fyne.Resource
	Paused fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	host         Host
	icons        Icons
	menu         *fyne.Menu
	statusItem   *fyne.MenuItem
	pauseItem    *fyne.MenuItem
	continueItem *fyne.MenuItem
	status       string
	awaiting     bool
	icon         fyne.Resource
}

// New creates a tray manager with the provided callbacks.
func New(host Host, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{host: host, icons: icons}

	manager.statusItem = fyne.NewMenuItem("Starting...", nil)
	manager.statusItem.Disabled = true
	manager.pauseItem = fyne.NewMenuItem("Pause", callbacks.OnTogglePause)
	manager.continueItem = fyne.NewMenuItem("Continue", callbacks.OnAcknowledge)

	manager.menu = fyne.NewMenu("TimeFlo",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timer", callbacks.OnShow),
		manager.pauseItem,
		manager.continueItem,
		fyne.NewMenuItem("Skip interval", callbacks.OnSkip),
		fyne.NewMenuItem("Reset cycle", callbacks.OnCancel),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", callbacks.OnPreferences),
		fyne.NewMenuItem("Quit", callbacks.OnQuit),
	)
	for _, item := range manager.menu.Items {
		if item.Action == nil && !item.IsSeparator && item != manager.statusItem {
			item.Disabled = true
		}
	}
	manager.continueItem.Disabled = true

	host.SetSystemTrayMenu(manager.menu)
	manager.setIcon(icons.Task)
	return manager
}

// Update reflects snapshot in the tray. The menu is only rebuilt when the
// visible text or the enabled items change.
func (manager *Manager) Update(snapshot timekeeper.Snapshot) {
	status := StatusLabel(snapshot)
	pauseLabel := "Pause"
	if snapshot.Mode == timekeeper.ModePaused {
		pauseLabel = "Resume"
	}
	awaiting := snapshot.Mode == timekeeper.ModeAwaitingAck

	switch {
	case snapshot.Mode == timekeeper.ModePaused:
		manager.setIcon(manager.icons.Paused)
	case snapshot.Kind.IsBreak():
		manager.setIcon(manager.icons.Break)
	default:
		manager.setIcon(manager.icons.Task)
	}

	if status == manager.status && pauseLabel == manager.pauseItem.Label && awaiting == manager.awaiting {
		return
	}
	manager.status = status
	manager.awaiting = awaiting
	manager.statusItem.Label = status
	manager.pauseItem.Label = pauseLabel
	manager.pauseItem.Disabled = awaiting || manager.pauseItem.Action == nil
	manager.continueItem.Disabled = !awaiting || manager.continueItem.Action == nil
	manager.host.SetSystemTrayMenu(manager.menu)
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.status
}

func (manager *Manager) setIcon(icon fyne.Resource) {
	if icon == nil || icon == manager.icon {
		return
	}
	manager.icon = icon
	manager.host.SetSystemTrayIcon(icon)
}

// StatusLabel renders a one-line summary of the timer.
func StatusLabel(snapshot timekeeper.Snapshot) string {
	name := snapshot.Kind.DisplayName()
	switch snapshot.Mode {
	case timekeeper.ModeAwaitingAck:
		return fmt.Sprintf("%s finished", name)
	case timekeeper.ModePaused:
		return fmt.Sprintf("%s %s (paused)", name, timekeeper.FormatRemaining(snapshot.Remaining))
	default:
		return fmt.Sprintf("%s %s", name, timekeeper.FormatRemaining(snapshot.Remaining))
	}
}
