package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"timeflo/internal/ui/preferences"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher reloads the settings file when it changes on disk.
type Watcher struct {
	store    *Store
	onChange func(preferences.Settings)
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	last    preferences.Settings
	stopCh  chan struct{}
	stopped bool
}

// NewWatcher creates a watcher for the store's file. onChange receives the
// reloaded settings; it is not called when the content is unchanged.
func NewWatcher(store *Store, initial preferences.Settings, onChange func(preferences.Settings), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	return &Watcher{
		store:    store,
		onChange: onChange,
		logger:   logger,
		watcher:  fsWatcher,
		debounce: defaultDebounce,
		last:     initial,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start watches the directory holding the settings file. Editors and Save
// replace the file by rename, so the directory is watched rather than the file.
func (watcher *Watcher) Start() error {
	dir := filepath.Dir(watcher.store.Path())
	if err := watcher.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch config directory %s: %w", dir, err)
	}
	go watcher.processEvents()
	return nil
}

// Stop ends watching.
func (watcher *Watcher) Stop() error {
	watcher.mu.Lock()
	if watcher.stopped {
		watcher.mu.Unlock()
		return nil
	}
	watcher.stopped = true
	close(watcher.stopCh)
	if watcher.timer != nil {
		watcher.timer.Stop()
	}
	watcher.mu.Unlock()
	return watcher.watcher.Close()
}

// Remember records settings written by this process so the resulting file
// event does not loop back into onChange.
func (watcher *Watcher) Remember(settings preferences.Settings) {
	watcher.mu.Lock()
	watcher.last = settings
	watcher.mu.Unlock()
}

func (watcher *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-watcher.watcher.Events:
			if !ok {
				return
			}
			watcher.handleEvent(event)
		case err, ok := <-watcher.watcher.Errors:
			if !ok {
				return
			}
			watcher.logger.Warn("settings watcher error", "error", err)
		case <-watcher.stopCh:
			return
		}
	}
}

func (watcher *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(watcher.store.Path()) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	if watcher.stopped {
		return
	}
	if watcher.timer != nil {
		watcher.timer.Stop()
	}
	watcher.timer = time.AfterFunc(watcher.debounce, watcher.reload)
}

func (watcher *Watcher) reload() {
	settings, err := watcher.store.Load()
	if err != nil {
		watcher.logger.Warn("reload settings failed", "path", watcher.store.Path(), "error", err)
		return
	}

	watcher.mu.Lock()
	if watcher.stopped || settings == watcher.last {
		watcher.mu.Unlock()
		return
	}
	watcher.last = settings
	watcher.mu.Unlock()

	watcher.logger.Info("settings reloaded", "path", watcher.store.Path())
	if watcher.onChange != nil {
		watcher.onChange(settings)
	}
}
