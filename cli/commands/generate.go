package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/seistech/nshmdb/ingest"
	"github.com/seistech/nshmdb/nshmdb"
)

// NewGenerateCommand creates the generate command, which builds a rupture
// database from a CRU system solution package.
func NewGenerateCommand() *cobra.Command {
	var opts ingest.Options

	cmd := &cobra.Command{
		Use:   "generate <cru-solutions-zip> <db-path>",
		Short: "Generate a rupture database from a CRU system solution package",
		Long: `Generate reads the fault sections, rupture properties, rates and
magnitude-frequency distributions from a CRU system solution zip archive and
writes them to a new SQLite rupture database.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			zipPath, dbPath := args[0], args[1]

			db, err := nshmdb.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Create(cmd.Context()); err != nil {
				return err
			}

			spinner, _ := pterm.DefaultSpinner.Start("Ingesting solution package")
			if err := ingest.Run(cmd.Context(), db, zipPath, opts); err != nil {
				spinner.Fail(err.Error())
				return err
			}
			spinner.Success("Rupture database written to " + dbPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.SkipFaults, "skip-faults-creation", false, "Skip fault creation")
	cmd.Flags().BoolVar(&opts.SkipRuptures, "skip-rupture-creation", false, "Skip rupture creation")
	cmd.Flags().BoolVar(&opts.SkipMFDs, "skip-mfds-creation", false, "Skip magnitude-frequency distribution creation")
	return cmd
}
