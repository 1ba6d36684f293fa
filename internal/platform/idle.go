package platform

import (
	"time"

	"timeflo/internal/core/timekeeper"
)

// NewIdleChecker returns the idle checker for the current platform. Checkers
// report timekeeper.ErrIdleUnsupported when no idle source is available.
func NewIdleChecker() timekeeper.IdleChecker {
	return newIdleChecker()
}

type unsupportedIdleChecker struct{}

func (unsupportedIdleChecker) IdleDuration() (time.Duration, error) {
	return 0, timekeeper.ErrIdleUnsupported
}
