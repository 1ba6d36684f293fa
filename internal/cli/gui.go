package cli

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"timeflo/internal/core/timekeeper"
	"timeflo/internal/notify"
	"timeflo/internal/platform"
	"timeflo/internal/storage"
	"timeflo/internal/ui/preferences"
	"timeflo/internal/ui/timerview"
	"timeflo/internal/ui/tray"
	"timeflo/resources"
)

const updateBuffer = 32

// runGUI runs the desktop app. overrides is applied to settings reloaded from
// disk so command-line flags stay in effect for the whole session.
func runGUI(logger *slog.Logger, store *storage.Store, settings preferences.Settings, overrides func(preferences.Settings) preferences.Settings) error {
	lock, err := platform.AcquireInstanceLock(appName)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	keeperOptions := settings.KeeperOptions()
	keeperOptions.Logger = logger
	keeper, err := timekeeper.New(settings.IntervalConfig(), keeperOptions)
	if err != nil {
		return fmt.Errorf("create timer: %w", err)
	}
	keeper.SetIdleChecker(platform.NewIdleChecker())

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconActive))

	dispatcher := notify.NewDispatcher(fyneApp, settings.Notifications, logger)

	var prefsWindow *preferences.Window
	view := timerview.New(fyneApp, timerview.Callbacks{
		OnPause:       keeper.Pause,
		OnResume:      keeper.Resume,
		OnAcknowledge: keeper.Acknowledge,
		OnSkip:        keeper.Skip,
		OnCancel:      keeper.Cancel,
		OnPreferences: func() { prefsWindow.Show() },
	})
	view.SetShortBreaks(settings.ShortBreaks)

	// apply runs on the fyne main goroutine.
	apply := func(updated preferences.Settings) {
		if err := keeper.SetConfig(updated.IntervalConfig()); err != nil {
			logger.Error("rejected settings", "error", err)
			return
		}
		keeper.SetSkipPolicy(updated.SkipPolicy)
		keeper.SetIdleConfig(updated.IdleConfig())
		dispatcher.SetEnabled(updated.Notifications)
		view.SetShortBreaks(updated.ShortBreaks)
		view.Render(keeper.Snapshot())
	}

	watcher, err := storage.NewWatcher(store, settings, func(updated preferences.Settings) {
		fyne.Do(func() {
			logger.Info("settings file changed, reloading", "path", store.Path())
			updated = overrides(updated)
			prefsWindow.UpdateSettings(updated)
			apply(updated)
		})
	}, logger)
	if err != nil {
		logger.Warn("settings watcher unavailable", "error", err)
		watcher = nil
	}

	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		apply(updated)
		if watcher != nil {
			watcher.Remember(updated)
		}
		if err := store.Save(updated); err != nil {
			logger.Error("failed to save settings", "path", store.Path(), "error", err)
		}
	})

	if watcher != nil {
		if err := watcher.Start(); err != nil {
			logger.Warn("settings watcher unavailable", "error", err)
		}
		defer func() {
			_ = watcher.Stop()
		}()
	}

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Icons{
			Task:   resources.MustIcon(resources.IconActive),
			Break:  resources.MustIcon(resources.IconBreak),
			Paused: resources.MustIcon(resources.IconPaused),
		}, tray.Callbacks{
			OnShow:        view.Show,
			OnTogglePause: keeper.TogglePause,
			OnAcknowledge: keeper.Acknowledge,
			OnSkip:        keeper.Skip,
			OnCancel:      keeper.Cancel,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		view.Window().SetCloseIntercept(view.Window().Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		view.Window().SetMaster()
	}

	updates := keeper.Subscribe(updateBuffer)
	go func() {
		for update := range updates {
			switch update.Type {
			case timekeeper.UpdateIdlePause:
				logger.Info("task paused while idle", "detail", update.Message)
			case timekeeper.UpdateIdleError:
				logger.Debug("idle detection unavailable", "detail", update.Message)
			}
			fyne.Do(func() {
				dispatcher.Handle(update)
				view.Render(update.Snapshot)
				if trayManager != nil {
					trayManager.Update(update.Snapshot)
				}
			})
		}
	}()

	keeper.Start()
	defer keeper.Stop()

	view.Render(keeper.Snapshot())
	view.Show()
	fyneApp.Run()
	return nil
}
