//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func defaultAutostartDir() (string, error) {
	return "", nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func (autostart *Autostart) enable(execPath string) error {
	quoted := `"` + strings.Trim(execPath, `"`) + `"`
	return runReg("add", registryRunKey, "/v", autostart.appName, "/t", "REG_SZ", "/d", quoted, "/f")
}

func (autostart *Autostart) disable() error {
	return runReg("delete", registryRunKey, "/v", autostart.appName, "/f")
}

func runReg(args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("reg %s failed: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}
