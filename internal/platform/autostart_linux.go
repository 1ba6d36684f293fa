//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func defaultAutostartDir() (string, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func (autostart *Autostart) enable(execPath string) error {
	if err := os.MkdirAll(autostart.dir, 0o755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}
	if err := os.WriteFile(autostart.entryPath(), []byte(autostart.desktopEntry(execPath)), 0o644); err != nil {
		return fmt.Errorf("write desktop entry: %w", err)
	}
	return nil
}

func (autostart *Autostart) disable() error {
	if err := removeIfExists(autostart.entryPath()); err != nil {
		return fmt.Errorf("remove desktop entry: %w", err)
	}
	return nil
}

func (autostart *Autostart) entryPath() string {
	return filepath.Join(autostart.dir, autostart.slug()+".desktop")
}

func (autostart *Autostart) desktopEntry(execPath string) string {
	execLine := execPath
	if strings.Contains(execLine, " ") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}

	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Comment=Pomodoro task and break timer
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`, autostart.appName, execLine)
}
