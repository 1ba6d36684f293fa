package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIntervalConfig(t *testing.T) {
	config := DefaultIntervalConfig()

	assert.NoError(t, config.Validate())
	assert.Equal(t, 25*time.Minute, config.Duration(KindTask))
	assert.Equal(t, 5*time.Minute, config.Duration(KindShortBreak))
	assert.Equal(t, 15*time.Minute, config.Duration(KindLongBreak))
	assert.Equal(t, 4, config.BreaksBeforeLong)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*IntervalConfig)
	}{
		{"zero task", func(config *IntervalConfig) { config.Task = 0 }},
		{"negative short break", func(config *IntervalConfig) { config.ShortBreak = -time.Second }},
		{"zero long break", func(config *IntervalConfig) { config.LongBreak = 0 }},
		{"no breaks before long", func(config *IntervalConfig) { config.BreaksBeforeLong = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultIntervalConfig()
			tt.mutate(&config)
			assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
		})
	}
}

func TestIntervalKindNames(t *testing.T) {
	assert.Equal(t, "task", KindTask.String())
	assert.Equal(t, "short_break", KindShortBreak.String())
	assert.Equal(t, "long_break", KindLongBreak.String())
	assert.Equal(t, "kind(9)", IntervalKind(9).String())

	assert.Equal(t, "Task period", KindTask.DisplayName())
	assert.Equal(t, "Long break", KindLongBreak.DisplayName())

	assert.False(t, KindTask.IsBreak())
	assert.True(t, KindShortBreak.IsBreak())
	assert.True(t, KindLongBreak.IsBreak())
}
