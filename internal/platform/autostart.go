package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyExecPath indicates autostart was requested without a binary path.
var ErrEmptyExecPath = errors.New("exec path is empty")

// Autostart registers the application to launch at login.
type Autostart struct {
	appName string
	// dir holds the launcher entry; unused on Windows, which uses the registry.
	dir string
}

// NewAutostart returns an Autostart for appName using the OS-standard location.
func NewAutostart(appName string) (*Autostart, error) {
	dir, err := defaultAutostartDir()
	if err != nil {
		return nil, fmt.Errorf("resolve autostart dir: %w", err)
	}
	return &Autostart{appName: appName, dir: dir}, nil
}

// Enable registers execPath to run at login.
func (autostart *Autostart) Enable(execPath string) error {
	if strings.TrimSpace(execPath) == "" {
		return fmt.Errorf("enable autostart: %w", ErrEmptyExecPath)
	}
	if err := autostart.enable(execPath); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

// Disable removes the login registration. A missing launcher file is not an error.
func (autostart *Autostart) Disable() error {
	if err := autostart.disable(); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

// ConfigDir returns the OS-standard configuration directory.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

func (autostart *Autostart) slug() string {
	name := strings.TrimSpace(autostart.appName)
	if name == "" {
		name = "timeflo"
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
