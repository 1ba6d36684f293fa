// Package cli defines the timeflo command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"timeflo/internal/logging"
	"timeflo/internal/storage"
	"timeflo/internal/ui/preferences"
)

const (
	appName = "TimeFlo"
	appID   = "app.timeflo"
)

var version = "dev" // set via ldflags at build time

type globalOptions struct {
	configPath string
	logLevel   string
	logFile    string

	logger *slog.Logger
	closer io.Closer
}

// Execute runs the root command. Called from main.
func Execute() error {
	opts := &globalOptions{}
	defer opts.close()
	return newRootCommand(opts).Execute()
}

func newRootCommand(opts *globalOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "timeflo",
		Short: "Pomodoro timer",
		Long: `TimeFlo alternates focused task periods with short breaks and,
after a configurable number of short breaks, a long break.

Without a subcommand it opens the desktop timer with a tray menu.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, settings, err := opts.loadSettings(cmd.Flags())
			if err != nil {
				return err
			}
			return runGUI(opts.logger, store, settings, sessionOverrides(cmd.Flags(), opts.log()))
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "settings file (default is <user config dir>/TimeFlo/settings.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	addIntervalFlags(flags)

	root.AddCommand(newTUICommand(opts))
	root.AddCommand(newAutostartCommand())
	root.AddCommand(newConfigCommand(opts))
	return root
}

func (opts *globalOptions) setup() error {
	logger, closer, err := logging.Setup(opts.logLevel, opts.logFile)
	if err != nil {
		return err
	}
	opts.close()
	opts.logger = logger
	opts.closer = closer
	slog.SetDefault(logger)
	return nil
}

func (opts *globalOptions) close() {
	if opts.closer != nil {
		_ = opts.closer.Close()
		opts.closer = nil
	}
}

func (opts *globalOptions) store() (*storage.Store, error) {
	if opts.configPath != "" {
		return storage.NewStore(opts.configPath), nil
	}
	path, err := storage.DefaultPath(appName)
	if err != nil {
		return nil, err
	}
	return storage.NewStore(path), nil
}

// loadSettings reads stored settings and applies command-line overrides.
// A broken settings file falls back to defaults so the timer still starts.
func (opts *globalOptions) loadSettings(flags *pflag.FlagSet) (*storage.Store, preferences.Settings, error) {
	store, err := opts.store()
	if err != nil {
		return nil, preferences.Settings{}, err
	}
	settings, err := store.Load()
	if err != nil {
		opts.log().Warn("failed to load settings, using defaults", "path", store.Path(), "error", err)
		settings = preferences.DefaultSettings()
	}
	settings, err = applyIntervalFlags(flags, settings)
	if err != nil {
		return nil, preferences.Settings{}, fmt.Errorf("apply flags: %w", err)
	}
	return store, settings, nil
}

func (opts *globalOptions) log() *slog.Logger {
	if opts.logger == nil {
		return slog.Default()
	}
	return opts.logger
}
