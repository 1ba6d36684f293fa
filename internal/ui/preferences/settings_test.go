package preferences

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"timeflo/internal/core/model"
	"timeflo/internal/core/timekeeper"
)

func TestDefaultSettingsMatchDefaultIntervalConfig(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, model.DefaultIntervalConfig(), settings.IntervalConfig())
	assert.NoError(t, settings.IntervalConfig().Validate())
	assert.Equal(t, settings, settings.Normalize())
}

func TestIntervalConfigFractionalMinutes(t *testing.T) {
	settings := DefaultSettings()
	settings.TaskMinutes = 0.5
	settings.ShortBreaks = 2

	config := settings.IntervalConfig()
	assert.Equal(t, 30*time.Second, config.Task)
	assert.Equal(t, 3, config.BreaksBeforeLong)
}

func TestShortBreaksCountsBreaksBeforeLong(t *testing.T) {
	settings := DefaultSettings()
	settings.ShortBreaks = 1

	engine, err := timekeeper.NewEngine(settings.IntervalConfig(), timekeeper.SkipPreserveCounter)
	assert.NoError(t, err)

	var kinds []model.IntervalKind
	for i := 0; i < 4; i++ {
		engine.Skip()
		kinds = append(kinds, engine.Snapshot().Kind)
	}
	assert.Equal(t, []model.IntervalKind{
		model.KindShortBreak, model.KindTask, model.KindLongBreak, model.KindTask,
	}, kinds)
}

func TestNormalizeReplacesOutOfRange(t *testing.T) {
	settings := Settings{
		TaskMinutes:       0,
		ShortBreakMinutes: 121,
		LongBreakMinutes:  30,
		ShortBreaks:       17,
		IdleAfterMinutes:  -1,
		SkipPolicy:        "sometimes",
	}

	normalized := settings.Normalize()
	defaults := DefaultSettings()
	assert.Equal(t, defaults.TaskMinutes, normalized.TaskMinutes)
	assert.Equal(t, defaults.ShortBreakMinutes, normalized.ShortBreakMinutes)
	assert.Equal(t, 30.0, normalized.LongBreakMinutes)
	assert.Equal(t, defaults.ShortBreaks, normalized.ShortBreaks)
	assert.Equal(t, defaults.IdleAfterMinutes, normalized.IdleAfterMinutes)
	assert.Equal(t, timekeeper.SkipPreserveCounter, normalized.SkipPolicy)
}

func TestKeeperOptions(t *testing.T) {
	settings := DefaultSettings()
	settings.IdlePause = true
	settings.IdleAfterMinutes = 2
	settings.SkipPolicy = timekeeper.SkipResetCounter

	options := settings.KeeperOptions()
	assert.Equal(t, timekeeper.SkipResetCounter, options.SkipPolicy)
	assert.True(t, options.Idle.Enabled)
	assert.Equal(t, 2*time.Minute, options.Idle.After)
	assert.Positive(t, options.TickInterval)
}
