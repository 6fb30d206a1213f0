package commands

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/seistech/nshmdb/nshmdb"
	"github.com/seistech/nshmdb/render"
)

// NewExportCommand creates the export command, which writes the faults of
// a rupture as GeoJSON for mapping.
func NewExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [db-path] <rupture-id> <output.geojson>",
		Short: "Export the faults of a rupture as GeoJSON",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			explicit := ""
			if len(args) == 3 {
				explicit, args = args[0], args[1:]
			}
			ruptureID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			dbPath, err := databasePath(explicit)
			if err != nil {
				return err
			}
			db, err := nshmdb.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			faults, err := db.RuptureFaults(cmd.Context(), ruptureID)
			if err != nil {
				return err
			}
			if err := render.WriteRupture(args[1], faults); err != nil {
				return err
			}
			pterm.Success.Printfln("Wrote %d faults to %s", len(faults), args[1])
			return nil
		},
	}
}
