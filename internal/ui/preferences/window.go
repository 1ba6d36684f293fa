package preferences

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"timeflo/internal/core/timekeeper"
)

var skipPolicyLabels = map[timekeeper.SkipPolicy]string{
	timekeeper.SkipPreserveCounter: "Skipping counts toward the long break",
	timekeeper.SkipResetCounter:    "Skipping restarts the long break cycle",
}

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	task          *slider
	shortBreak    *slider
	longBreak     *slider
	shortBreaks   *slider
	notifications *widget.Check
	idlePause     *widget.Check
	skipPolicy    *widget.Select
}

type slider struct {
	widget *widget.Slider
	value  *widget.Label
	format string
}

func newSlider(min, max, step float64, format string) *slider {
	entry := &slider{
		widget: widget.NewSlider(min, max),
		value:  widget.NewLabel(""),
		format: format,
	}
	entry.widget.Step = step
	entry.widget.OnChanged = func(value float64) {
		entry.value.SetText(fmt.Sprintf(entry.format, value))
	}
	return entry
}

func (entry *slider) set(value float64) {
	entry.widget.SetValue(value)
	entry.value.SetText(fmt.Sprintf(entry.format, value))
}

func (entry *slider) row(label string) fyne.CanvasObject {
	return container.NewBorder(nil, nil, widget.NewLabel(label), entry.value, entry.widget)
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("TimeFlo Preferences")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		task:          newSlider(MinIntervalMinutes, MaxIntervalMinutes, 0.5, "%.1f min"),
		shortBreak:    newSlider(MinIntervalMinutes, MaxIntervalMinutes, 0.5, "%.1f min"),
		longBreak:     newSlider(MinIntervalMinutes, MaxIntervalMinutes, 0.5, "%.1f min"),
		shortBreaks:   newSlider(MinShortBreaks, MaxShortBreaks, 1, "%.0f"),
		notifications: widget.NewCheck("Notify when an interval ends", nil),
		idlePause:     widget.NewCheck("Pause tasks while I am away", nil),
	}
	prefs.skipPolicy = widget.NewSelect([]string{
		skipPolicyLabels[timekeeper.SkipPreserveCounter],
		skipPolicyLabels[timekeeper.SkipResetCounter],
	}, nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Interval durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.task.row("Task period"),
		prefs.shortBreak.row("Short break"),
		prefs.longBreak.row("Long break"),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Program flow", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.shortBreaks.row("Short breaks"),
		prefs.skipPolicy,
		prefs.notifications,
		prefs.idlePause,
	)

	resetButton := widget.NewButton("Reset to default", func() {
		prefs.fill(DefaultSettings())
	})
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.fill(prefs.settings)
		window.Hide()
	})
	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	buttons := container.NewHBox(resetButton, layout.NewSpacer(), cancelButton, saveButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(440, 420))
	window.SetCloseIntercept(func() {
		prefs.fill(prefs.settings)
		window.Hide()
	})

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings.Normalize()
	prefs.fill(prefs.settings)
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) fill(settings Settings) {
	prefs.task.set(settings.TaskMinutes)
	prefs.shortBreak.set(settings.ShortBreakMinutes)
	prefs.longBreak.set(settings.LongBreakMinutes)
	prefs.shortBreaks.set(float64(settings.ShortBreaks))
	prefs.notifications.SetChecked(settings.Notifications)
	prefs.idlePause.SetChecked(settings.IdlePause)
	prefs.skipPolicy.SetSelected(skipPolicyLabels[settings.SkipPolicy])
}

func (prefs *Window) collect() Settings {
	settings := prefs.settings
	settings.TaskMinutes = prefs.task.widget.Value
	settings.ShortBreakMinutes = prefs.shortBreak.widget.Value
	settings.LongBreakMinutes = prefs.longBreak.widget.Value
	settings.ShortBreaks = int(prefs.shortBreaks.widget.Value)
	settings.Notifications = prefs.notifications.Checked
	settings.IdlePause = prefs.idlePause.Checked
	for policy, label := range skipPolicyLabels {
		if label == prefs.skipPolicy.Selected {
			settings.SkipPolicy = policy
		}
	}
	return settings.Normalize()
}

func (prefs *Window) handleSave() {
	prefs.settings = prefs.collect()
	if prefs.onSave != nil {
		prefs.onSave(prefs.settings)
	}
	prefs.window.Hide()
}
