package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig indicates an IntervalConfig that the engine cannot run.
var ErrInvalidConfig = errors.New("invalid interval config")

// IntervalKind identifies a task or break interval.
type IntervalKind int

const (
	KindTask IntervalKind = iota
	KindShortBreak
	KindLongBreak
)

// String returns the stable identifier used in logs and settings files.
func (kind IntervalKind) String() string {
	switch kind {
	case KindTask:
		return "task"
	case KindShortBreak:
		return "short_break"
	case KindLongBreak:
		return "long_break"
	default:
		return fmt.Sprintf("kind(%d)", int(kind))
	}
}

// DisplayName returns the human readable interval name.
func (kind IntervalKind) DisplayName() string {
	switch kind {
	case KindTask:
		return "Task period"
	case KindShortBreak:
		return "Short break"
	case KindLongBreak:
		return "Long break"
	default:
		return ""
	}
}

// IsBreak reports whether the kind is a rest interval.
func (kind IntervalKind) IsBreak() bool {
	return kind == KindShortBreak || kind == KindLongBreak
}

// IntervalConfig contains the durations for each interval kind and the
// number of short breaks that occur before each long break.
type IntervalConfig struct {
	Task             time.Duration
	ShortBreak       time.Duration
	LongBreak        time.Duration
	BreaksBeforeLong int
}

// DefaultIntervalConfig returns the classic 25/5/15 cycle.
func DefaultIntervalConfig() IntervalConfig {
	return IntervalConfig{
		Task:             25 * time.Minute,
		ShortBreak:       5 * time.Minute,
		LongBreak:        15 * time.Minute,
		BreaksBeforeLong: 4,
	}
}

// Duration returns the configured duration for kind.
func (config IntervalConfig) Duration(kind IntervalKind) time.Duration {
	switch kind {
	case KindTask:
		return config.Task
	case KindShortBreak:
		return config.ShortBreak
	case KindLongBreak:
		return config.LongBreak
	default:
		return 0
	}
}

// Validate checks that every duration is positive and BreaksBeforeLong is at least one.
func (config IntervalConfig) Validate() error {
	for _, kind := range []IntervalKind{KindTask, KindShortBreak, KindLongBreak} {
		if config.Duration(kind) <= 0 {
			return fmt.Errorf("%w: %s duration must be positive, got %s", ErrInvalidConfig, kind, config.Duration(kind))
		}
	}
	if config.BreaksBeforeLong < 1 {
		return fmt.Errorf("%w: breaks before long must be at least 1, got %d", ErrInvalidConfig, config.BreaksBeforeLong)
	}
	return nil
}
