// Package notify turns interval completions into desktop notifications.
package notify

import (
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"

	"timeflo/internal/core/model"
	"timeflo/internal/core/timekeeper"
)

const title = "TimeFlo"

// Sender delivers a notification to the user. fyne.App satisfies it.
type Sender interface {
	SendNotification(*fyne.Notification)
}

// Dispatcher consumes keeper updates and alerts on completed intervals.
type Dispatcher struct {
	sender Sender
	logger *slog.Logger

	mu      sync.Mutex
	enabled bool
}

// NewDispatcher creates a dispatcher sending through sender.
func NewDispatcher(sender Sender, enabled bool, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{sender: sender, enabled: enabled, logger: logger}
}

// SetEnabled toggles delivery.
func (dispatcher *Dispatcher) SetEnabled(enabled bool) {
	dispatcher.mu.Lock()
	dispatcher.enabled = enabled
	dispatcher.mu.Unlock()
}

// Handle sends a notification when update reports a completed interval.
func (dispatcher *Dispatcher) Handle(update timekeeper.Update) {
	if update.Type != timekeeper.UpdateEvent || update.Event.Type != timekeeper.EventIntervalCompleted {
		return
	}
	dispatcher.mu.Lock()
	enabled := dispatcher.enabled
	dispatcher.mu.Unlock()
	if !enabled || dispatcher.sender == nil {
		return
	}

	body := Message(update.Event.Kind)
	dispatcher.logger.Debug("sending notification", "kind", update.Event.Kind.String())
	dispatcher.sender.SendNotification(fyne.NewNotification(title, body))
}

// Message returns the notification text for a completed interval.
func Message(kind model.IntervalKind) string {
	switch kind {
	case model.KindTask:
		return "Time to take a break! \U0001F389"
	case model.KindShortBreak:
		return "Your short break is over."
	case model.KindLongBreak:
		return "Your long break is over."
	default:
		return ""
	}
}
