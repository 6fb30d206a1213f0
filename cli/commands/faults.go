package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/seistech/nshmdb/nshmdb"
)

// NewFaultsCommand creates the faults command, which lists the parent
// fault names usable in query expressions.
func NewFaultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "faults [db-path]",
		Short: "List the parent fault names in the database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explicit := ""
			if len(args) == 1 {
				explicit = args[0]
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

			names, err := db.FaultNames(cmd.Context())
			if err != nil {
				return err
			}

			sorted := make([]string, 0, len(names))
			for name := range names {
				sorted = append(sorted, name)
			}
			sort.Strings(sorted)
			for _, name := range sorted {
				fmt.Println(name)
			}
			return nil
		},
	}
}
