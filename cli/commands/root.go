// Package commands implements the nshmdb CLI commands.
package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/seistech/nshmdb/cli/internal/config"
	"github.com/seistech/nshmdb/internal/debug"
)

var (
	// Version information (set by build)
	Version = "dev"
	Commit  = "unknown"
)

// Execute runs the root command and reports any error to stderr.
func Execute() error {
	if err := NewRootCommand().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewRootCommand builds the nshmdb root command with all subcommands
// attached.
func NewRootCommand() *cobra.Command {
	var debugFlag bool

	rootCmd := &cobra.Command{
		Use:     "nshmdb",
		Short:   "Query and manage the NSHM rupture database",
		Long:    "nshmdb builds and queries a database of National Seismic Hazard Model ruptures, faults and rates.",
		Version: fmt.Sprintf("%s (commit: %s)", Version, Commit),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			debug.Init(debugFlag || (err == nil && cfg.Debug))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewQueryCommand())
	rootCmd.AddCommand(NewFaultsCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewConfigCommand())
	return rootCmd
}

// databasePath returns the explicitly supplied database path, or the
// configured default when the command was invoked without one.
func databasePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.DatabasePath, nil
}
