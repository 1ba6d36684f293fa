package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"timeflo/internal/core/timekeeper"
	"timeflo/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	TaskMinutes       float64 `yaml:"task_minutes"`
	ShortBreakMinutes float64 `yaml:"short_break_minutes"`
	LongBreakMinutes  float64 `yaml:"long_break_minutes"`
	ShortBreaks       int     `yaml:"short_breaks"`
	Notifications     *bool   `yaml:"notifications,omitempty"`
	IdlePause         bool    `yaml:"idle_pause"`
	IdleAfterMinutes  float64 `yaml:"idle_after_minutes,omitempty"`
	SkipPolicy        string  `yaml:"skip_policy,omitempty"`
}

// Store reads and writes user preferences in a YAML file.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the settings file location inside the user config directory.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// Path returns the settings file path.
func (store *Store) Path() string {
	return store.path
}

// Load reads user preferences.
// If the file does not exist, default settings are returned.
func (store *Store) Load() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings.Normalize(), nil
}

// Save writes user preferences.
func (store *Store) Save(settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := Marshal(settings)
	if err != nil {
		return err
	}

	// Write through a temp file so the watcher never observes a partial file.
	tempPath := store.path + ".tmp"
	if err := os.WriteFile(tempPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tempPath, store.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replace settings file: %w", err)
	}

	return nil
}

// Marshal renders settings in the on-disk YAML format.
func Marshal(settings preferences.Settings) ([]byte, error) {
	notifications := settings.Notifications
	fileData := yamlSettings{
		TaskMinutes:       settings.TaskMinutes,
		ShortBreakMinutes: settings.ShortBreakMinutes,
		LongBreakMinutes:  settings.LongBreakMinutes,
		ShortBreaks:       settings.ShortBreaks,
		Notifications:     &notifications,
		IdlePause:         settings.IdlePause,
		IdleAfterMinutes:  settings.IdleAfterMinutes,
		SkipPolicy:        string(settings.SkipPolicy),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return nil, fmt.Errorf("marshal settings yaml: %w", err)
	}
	return serialized, nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.TaskMinutes > 0 {
		settings.TaskMinutes = fileData.TaskMinutes
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreakMinutes = fileData.ShortBreakMinutes
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreakMinutes = fileData.LongBreakMinutes
	}
	if fileData.ShortBreaks > 0 {
		settings.ShortBreaks = fileData.ShortBreaks
	}
	if fileData.IdleAfterMinutes > 0 {
		settings.IdleAfterMinutes = fileData.IdleAfterMinutes
	}
	if fileData.SkipPolicy != "" {
		settings.SkipPolicy = timekeeper.SkipPolicy(fileData.SkipPolicy)
	}
	if fileData.Notifications != nil {
		settings.Notifications = *fileData.Notifications
	}

	settings.IdlePause = fileData.IdlePause
}
