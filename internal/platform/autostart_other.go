//go:build !linux && !darwin && !windows

package platform

import (
	"errors"
	"path/filepath"
)

var errAutostartUnsupported = errors.New("autostart unsupported on this platform")

func defaultAutostartDir() (string, error) {
	return "", nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func (autostart *Autostart) enable(string) error {
	return errAutostartUnsupported
}

func (autostart *Autostart) disable() error {
	return errAutostartUnsupported
}
