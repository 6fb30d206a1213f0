package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/seistech/nshmdb/cli/internal/config"
)

// NewConfigCommand creates the config command, which shows the effective
// CLI configuration or persists a new default database path.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config [database-path]",
		Short: "Show or set the default rupture database path",
		Long: `Config prints the effective configuration, or, given a path, persists it
as the default rupture database used by commands invoked without one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				fmt.Println("database_path:", cfg.DatabasePath)
				fmt.Println("debug:", cfg.Debug)
				return nil
			}

			cfg.DatabasePath = args[0]
			if err := config.Save(cfg); err != nil {
				return err
			}
			pterm.Success.Printfln("Default database path set to %s", cfg.DatabasePath)
			return nil
		},
	}
}
