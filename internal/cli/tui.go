package cli

import (
	"github.com/spf13/cobra"

	"timeflo/internal/core/timekeeper"
	"timeflo/internal/tui"
)

func newTUICommand(opts *globalOptions) *cobra.Command {
	var bell bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, settings, err := opts.loadSettings(cmd.Flags())
			if err != nil {
				return err
			}
			engine, err := timekeeper.NewEngine(settings.IntervalConfig(), settings.SkipPolicy)
			if err != nil {
				return err
			}
			options := tui.Options{Logger: opts.log()}
			if bell {
				options.Bell = cmd.OutOrStdout()
			}
			return tui.Run(engine, options)
		},
	}
	cmd.Flags().BoolVar(&bell, "bell", true, "ring the terminal bell when an interval ends")
	return cmd
}
