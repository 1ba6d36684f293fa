package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"timeflo/internal/core/timekeeper"
	"timeflo/internal/ui/preferences"
)

// ErrInvalidFlag indicates an interval flag outside the accepted range.
var ErrInvalidFlag = errors.New("invalid flag value")

const (
	flagTask        = "task"
	flagShortBreak  = "short-break"
	flagLongBreak   = "long-break"
	flagShortBreaks = "short-breaks"
	flagSkipPolicy  = "skip-policy"
)

func addIntervalFlags(flags *pflag.FlagSet) {
	flags.Float64(flagTask, 0, "task period in minutes")
	flags.Float64(flagShortBreak, 0, "short break in minutes")
	flags.Float64(flagLongBreak, 0, "long break in minutes")
	flags.Int(flagShortBreaks, 0, "short breaks before each long break")
	flags.String(flagSkipPolicy, "", "what skipping a short break does to the cycle (preserve, reset)")
}

// applyIntervalFlags overrides settings with the interval flags the user set.
// Flags left at their defaults do not touch settings.
func applyIntervalFlags(flags *pflag.FlagSet, settings preferences.Settings) (preferences.Settings, error) {
	var applyErr error
	flags.VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed || applyErr != nil {
			return
		}
		switch flag.Name {
		case flagTask:
			settings.TaskMinutes, applyErr = minutesFlag(flags, flag.Name)
		case flagShortBreak:
			settings.ShortBreakMinutes, applyErr = minutesFlag(flags, flag.Name)
		case flagLongBreak:
			settings.LongBreakMinutes, applyErr = minutesFlag(flags, flag.Name)
		case flagShortBreaks:
			settings.ShortBreaks, applyErr = flags.GetInt(flag.Name)
			if applyErr == nil && (settings.ShortBreaks < preferences.MinShortBreaks || settings.ShortBreaks > preferences.MaxShortBreaks) {
				applyErr = fmt.Errorf("%w: --%s must be between %d and %d", ErrInvalidFlag, flag.Name,
					preferences.MinShortBreaks, preferences.MaxShortBreaks)
			}
		case flagSkipPolicy:
			policy := timekeeper.SkipPolicy(flag.Value.String())
			if policy != timekeeper.SkipPreserveCounter && policy != timekeeper.SkipResetCounter {
				applyErr = fmt.Errorf("%w: --%s must be %q or %q", ErrInvalidFlag, flag.Name,
					timekeeper.SkipPreserveCounter, timekeeper.SkipResetCounter)
				return
			}
			settings.SkipPolicy = policy
		}
	})
	return settings, applyErr
}

// sessionOverrides returns a function that re-applies the interval flags to
// settings loaded later in the session. Flags were validated at startup, so an
// error here only leaves settings untouched.
func sessionOverrides(flags *pflag.FlagSet, logger *slog.Logger) func(preferences.Settings) preferences.Settings {
	return func(settings preferences.Settings) preferences.Settings {
		overridden, err := applyIntervalFlags(flags, settings)
		if err != nil {
			logger.Warn("failed to apply flag overrides", "error", err)
			return settings
		}
		return overridden
	}
}

func minutesFlag(flags *pflag.FlagSet, name string) (float64, error) {
	value, err := flags.GetFloat64(name)
	if err != nil {
		return 0, err
	}
	if value < preferences.MinIntervalMinutes || value > preferences.MaxIntervalMinutes {
		return 0, fmt.Errorf("%w: --%s must be between %g and %g minutes", ErrInvalidFlag, name,
			preferences.MinIntervalMinutes, preferences.MaxIntervalMinutes)
	}
	return value, nil
}
