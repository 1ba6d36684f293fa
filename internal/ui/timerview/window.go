package timerview

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"timeflo/internal/core/timekeeper"
	"timeflo/internal/ui/attention"
)

const urgentThreshold = 5 * time.Second

var (
	normalColor = color.NRGBA{R: 232, G: 232, B: 232, A: 255}
	urgentColor = color.NRGBA{R: 229, G: 72, B: 77, A: 255}
	dimColor    = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
)

// Callbacks defines the user commands the view can issue.
type Callbacks struct {
	OnPause       func()
	OnResume      func()
	OnAcknowledge func()
	OnSkip        func()
	OnCancel      func()
	OnPreferences func()
}

// Window shows the current interval and the timer controls.
type Window struct {
	window        fyne.Window
	callbacks     Callbacks
	heading       *widget.Label
	timerText     *canvas.Text
	cycleLabel    *widget.Label
	progress      *widget.ProgressBar
	primaryButton *widget.Button
	skipButton    *widget.Button
	resetButton   *widget.Button
	blinker       *attention.Blinker
	snapshot      timekeeper.Snapshot
	shortBreaks   int
}

// New creates the timer window.
func New(app fyne.App, callbacks Callbacks) *Window {
	window := app.NewWindow("TimeFlo")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window:     window,
		callbacks:  callbacks,
		heading:    widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		cycleLabel: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		progress:   widget.NewProgressBar(),
	}

	view.timerText = canvas.NewText("--:--", normalColor)
	view.timerText.Alignment = fyne.TextAlignCenter
	view.timerText.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	view.timerText.TextSize = 48

	view.primaryButton = widget.NewButton("Pause", view.handlePrimary)
	view.primaryButton.Importance = widget.HighImportance
	view.skipButton = widget.NewButton("Skip", func() { call(view.callbacks.OnSkip) })
	view.resetButton = widget.NewButton("Reset", func() { call(view.callbacks.OnCancel) })
	gear := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() { call(view.callbacks.OnPreferences) })

	view.blinker = attention.New(attention.DefaultConfig(), func(on bool) {
		fyne.Do(func() { view.setHighlight(on) })
	})

	controls := container.NewHBox(view.primaryButton, view.skipButton, view.resetButton, layout.NewSpacer(), gear)
	content := container.NewVBox(
		view.heading,
		view.timerText,
		view.progress,
		view.cycleLabel,
		controls,
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(340, 240))

	return view
}

// Window returns the underlying fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Show displays the timer window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// SetShortBreaks sets the number of short breaks per cycle shown under the timer.
func (view *Window) SetShortBreaks(breaks int) {
	view.shortBreaks = breaks
	view.renderCycle()
}

// Render redraws the view. It must run on the fyne main goroutine.
func (view *Window) Render(snapshot timekeeper.Snapshot) {
	previous := view.snapshot.Mode
	view.snapshot = snapshot

	heading := snapshot.Kind.DisplayName()
	switch snapshot.Mode {
	case timekeeper.ModePaused:
		heading += " (paused)"
	case timekeeper.ModeAwaitingAck:
		heading += " finished"
	}
	view.heading.SetText(heading)

	view.timerText.Text = timekeeper.FormatRemaining(snapshot.Remaining)
	view.timerText.Color = view.baseColor()
	view.timerText.Refresh()
	view.progress.SetValue(snapshot.Progress())
	view.renderCycle()

	switch snapshot.Mode {
	case timekeeper.ModeRunning:
		view.primaryButton.SetText("Pause")
	case timekeeper.ModePaused:
		view.primaryButton.SetText("Resume")
	case timekeeper.ModeAwaitingAck:
		view.primaryButton.SetText("Continue")
	}

	if snapshot.Mode == timekeeper.ModeAwaitingAck && previous != timekeeper.ModeAwaitingAck {
		view.blinker.Start(context.Background())
	} else if snapshot.Mode != timekeeper.ModeAwaitingAck && view.blinker.Active() {
		view.blinker.Stop()
	}
}

func (view *Window) handlePrimary() {
	switch view.snapshot.Mode {
	case timekeeper.ModeRunning:
		call(view.callbacks.OnPause)
	case timekeeper.ModePaused:
		call(view.callbacks.OnResume)
	case timekeeper.ModeAwaitingAck:
		call(view.callbacks.OnAcknowledge)
	}
}

func (view *Window) renderCycle() {
	if view.shortBreaks <= 0 {
		view.cycleLabel.SetText("")
		return
	}
	view.cycleLabel.SetText(fmt.Sprintf("Short breaks: %d of %d before a long break",
		view.snapshot.ShortBreaks, view.shortBreaks))
}

func (view *Window) baseColor() color.Color {
	if view.snapshot.Mode == timekeeper.ModeRunning && view.snapshot.Remaining <= urgentThreshold {
		return urgentColor
	}
	if view.snapshot.Mode == timekeeper.ModePaused {
		return dimColor
	}
	return normalColor
}

func (view *Window) setHighlight(on bool) {
	if on && view.snapshot.Mode == timekeeper.ModeAwaitingAck {
		view.timerText.Color = urgentColor
	} else {
		view.timerText.Color = view.baseColor()
	}
	view.timerText.Refresh()
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
