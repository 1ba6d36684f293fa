package timerview

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"timeflo/internal/core/model"
	"timeflo/internal/core/timekeeper"
)

type commands struct {
	issued []string
}

func (c *commands) callbacks() Callbacks {
	record := func(name string) func() {
		return func() { c.issued = append(c.issued, name) }
	}
	return Callbacks{
		OnPause:       record("pause"),
		OnResume:      record("resume"),
		OnAcknowledge: record("acknowledge"),
		OnSkip:        record("skip"),
		OnCancel:      record("cancel"),
		OnPreferences: record("preferences"),
	}
}

func newTestView(t *testing.T) (*Window, *commands) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)
	cmds := &commands{}
	return New(app, cmds.callbacks()), cmds
}

func TestRenderRunningTask(t *testing.T) {
	view, _ := newTestView(t)
	view.SetShortBreaks(3)

	view.Render(timekeeper.Snapshot{
		Kind:        model.KindTask,
		Remaining:   754 * time.Second,
		Duration:    1500 * time.Second,
		Mode:        timekeeper.ModeRunning,
		ShortBreaks: 1,
	})

	assert.Equal(t, "Task period", view.heading.Text)
	assert.Equal(t, "12:34", view.timerText.Text)
	assert.Equal(t, "Pause", view.primaryButton.Text)
	assert.Equal(t, "Short breaks: 1 of 3 before a long break", view.cycleLabel.Text)
	assert.InDelta(t, 0.497, view.progress.Value, 0.001)
	assert.Equal(t, normalColor, view.timerText.Color)
}

func TestRenderUrgentAndPaused(t *testing.T) {
	view, _ := newTestView(t)

	view.Render(timekeeper.Snapshot{Kind: model.KindShortBreak, Remaining: 4 * time.Second, Duration: time.Minute, Mode: timekeeper.ModeRunning})
	assert.Equal(t, urgentColor, view.timerText.Color)

	view.Render(timekeeper.Snapshot{Kind: model.KindShortBreak, Remaining: 4 * time.Second, Duration: time.Minute, Mode: timekeeper.ModePaused})
	assert.Equal(t, "Short break (paused)", view.heading.Text)
	assert.Equal(t, "Resume", view.primaryButton.Text)
	assert.Equal(t, dimColor, view.timerText.Color)
}

func TestPrimaryButtonFollowsMode(t *testing.T) {
	view, cmds := newTestView(t)

	view.Render(timekeeper.Snapshot{Kind: model.KindTask, Remaining: time.Minute, Duration: time.Minute, Mode: timekeeper.ModeRunning})
	test.Tap(view.primaryButton)
	view.Render(timekeeper.Snapshot{Kind: model.KindTask, Remaining: time.Minute, Duration: time.Minute, Mode: timekeeper.ModePaused})
	test.Tap(view.primaryButton)
	view.Render(timekeeper.Snapshot{Kind: model.KindTask, Duration: time.Minute, Mode: timekeeper.ModeAwaitingAck})
	assert.Equal(t, "Continue", view.primaryButton.Text)
	assert.True(t, view.blinker.Active())
	test.Tap(view.primaryButton)
	view.Render(timekeeper.Snapshot{Kind: model.KindShortBreak, Remaining: time.Minute, Duration: time.Minute, Mode: timekeeper.ModeRunning})
	assert.False(t, view.blinker.Active())

	test.Tap(view.skipButton)
	test.Tap(view.resetButton)

	assert.Equal(t, []string{"pause", "resume", "acknowledge", "skip", "cancel"}, cmds.issued)
}
