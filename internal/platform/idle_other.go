//go:build !linux && !darwin && !windows

package platform

import "timeflo/internal/core/timekeeper"

func newIdleChecker() timekeeper.IdleChecker {
	return unsupportedIdleChecker{}
}
