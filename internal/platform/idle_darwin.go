package platform

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"timeflo/internal/core/timekeeper"
)

var hidIdlePattern = regexp.MustCompile(`"HIDIdleTime"\s*=\s*(\d+)`)

type ioregChecker struct {
	path string
}

func newIdleChecker() timekeeper.IdleChecker {
	path, err := exec.LookPath("ioreg")
	if err != nil {
		return unsupportedIdleChecker{}
	}
	return &ioregChecker{path: path}
}

func (checker *ioregChecker) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(checker.path, "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	match := hidIdlePattern.FindSubmatch(output)
	if match == nil {
		return 0, timekeeper.ErrIdleUnsupported
	}
	nanos, err := strconv.ParseInt(string(match[1]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse HIDIdleTime: %w", err)
	}
	return time.Duration(nanos), nil
}
