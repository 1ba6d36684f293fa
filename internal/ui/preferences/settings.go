package preferences

import (
	"time"

	"timeflo/internal/core/model"
	"timeflo/internal/core/timekeeper"
)

// Slider bounds for the preferences window and accepted stored values.
const (
	MinIntervalMinutes = 0.5
	MaxIntervalMinutes = 120.0
	MinShortBreaks     = 1
	MaxShortBreaks     = 16
)

// Settings defines editable user preferences.
type Settings struct {
	TaskMinutes       float64
	ShortBreakMinutes float64
	LongBreakMinutes  float64
	// ShortBreaks is the number of short breaks before each long break.
	ShortBreaks       int

	Notifications    bool
	IdlePause        bool
	IdleAfterMinutes float64
	SkipPolicy       timekeeper.SkipPolicy
}

// DefaultSettings returns default settings for TimeFlo.
func DefaultSettings() Settings {
	return Settings{
		TaskMinutes:       25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		ShortBreaks:       3,
		Notifications:     true,
		IdlePause:         false,
		IdleAfterMinutes:  5,
		SkipPolicy:        timekeeper.SkipPreserveCounter,
	}
}

// Normalize replaces out of range values with their defaults.
func (settings Settings) Normalize() Settings {
	defaults := DefaultSettings()
	if !inMinuteRange(settings.TaskMinutes) {
		settings.TaskMinutes = defaults.TaskMinutes
	}
	if !inMinuteRange(settings.ShortBreakMinutes) {
		settings.ShortBreakMinutes = defaults.ShortBreakMinutes
	}
	if !inMinuteRange(settings.LongBreakMinutes) {
		settings.LongBreakMinutes = defaults.LongBreakMinutes
	}
	if settings.ShortBreaks < MinShortBreaks || settings.ShortBreaks > MaxShortBreaks {
		settings.ShortBreaks = defaults.ShortBreaks
	}
	if !inMinuteRange(settings.IdleAfterMinutes) {
		settings.IdleAfterMinutes = defaults.IdleAfterMinutes
	}
	if settings.SkipPolicy != timekeeper.SkipPreserveCounter && settings.SkipPolicy != timekeeper.SkipResetCounter {
		settings.SkipPolicy = defaults.SkipPolicy
	}
	return settings
}

// IntervalConfig converts settings to the engine configuration.
func (settings Settings) IntervalConfig() model.IntervalConfig {
	return model.IntervalConfig{
		Task:             minutes(settings.TaskMinutes),
		ShortBreak:       minutes(settings.ShortBreakMinutes),
		LongBreak:        minutes(settings.LongBreakMinutes),
		BreaksBeforeLong: settings.ShortBreaks + 1,
	}
}

// IdleConfig converts settings to the keeper idle options.
func (settings Settings) IdleConfig() timekeeper.IdleConfig {
	return timekeeper.IdleConfig{
		Enabled:       settings.IdlePause,
		After:         minutes(settings.IdleAfterMinutes),
		CheckInterval: 5 * time.Second,
	}
}

// KeeperOptions returns keeper options matching these settings.
func (settings Settings) KeeperOptions() timekeeper.Config {
	return timekeeper.Config{
		TickInterval: 200 * time.Millisecond,
		SkipPolicy:   settings.SkipPolicy,
		Idle:         settings.IdleConfig(),
	}
}

func minutes(value float64) time.Duration {
	return time.Duration(value * float64(time.Minute))
}

func inMinuteRange(value float64) bool {
	return value >= MinIntervalMinutes && value <= MaxIntervalMinutes
}
