package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"timeflo/internal/platform"
)

func newAutostartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Manage launching TimeFlo at login",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Start TimeFlo when you log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			execPath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("resolve executable: %w", err)
			}
			autostart, err := platform.NewAutostart(appName)
			if err != nil {
				return err
			}
			if err := autostart.Enable(execPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Autostart enabled.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Stop starting TimeFlo at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			autostart, err := platform.NewAutostart(appName)
			if err != nil {
				return err
			}
			if err := autostart.Disable(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Autostart disabled.")
			return nil
		},
	})

	return cmd
}
