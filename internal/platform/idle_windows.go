package platform

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"

	"timeflo/internal/core/timekeeper"
)

var (
	user32          = syscall.NewLazyDLL("user32.dll")
	kernel32        = syscall.NewLazyDLL("kernel32.dll")
	procLastInput   = user32.NewProc("GetLastInputInfo")
	procTickCount64 = kernel32.NewProc("GetTickCount64")
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

type lastInputChecker struct{}

func newIdleChecker() timekeeper.IdleChecker {
	return lastInputChecker{}
}

func (lastInputChecker) IdleDuration() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	result, _, err := procLastInput.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		return 0, fmt.Errorf("get last input info: %w", err)
	}

	ticks, _, _ := procTickCount64.Call()
	// dwTime wraps every ~49.7 days; compare in the same 32-bit space.
	idleMillis := uint32(ticks) - info.dwTime
	return time.Duration(idleMillis) * time.Millisecond, nil
}
