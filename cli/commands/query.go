package commands

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/seistech/nshmdb/nshmdb"
	"github.com/seistech/nshmdb/query"
)

// NewQueryCommand creates the query command, which searches the database
// for ruptures matching a fault expression.
func NewQueryCommand() *cobra.Command {
	var (
		magnitudeLower  float64
		magnitudeUpper  float64
		rateLower       float64
		rateUpper       float64
		limit           int
		faultCountLimit int
		sqlOnly         bool
	)

	cmd := &cobra.Command{
		Use:   "query [db-path] <expression>",
		Short: "Search the database for ruptures matching a fault expression",
		Long: `Query searches for ruptures whose faults satisfy a boolean expression
combining parent fault names with & (and), | (or), ! (not) and parentheses:

    nshmdb query nshm2022.db 'Alpine Jacksons to Kaniere & !Wairau'

When the database path is omitted the configured default is used.
Results are ordered by rupture rate, highest first.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expression := args[len(args)-1]

			bounds := query.Bounds{Limit: limit}
			if cmd.Flags().Changed("magnitude-lower") {
				bounds.MagnitudeLower = &magnitudeLower
			}
			if cmd.Flags().Changed("magnitude-upper") {
				bounds.MagnitudeUpper = &magnitudeUpper
			}
			if cmd.Flags().Changed("rate-lower") {
				bounds.RateLower = &rateLower
			}
			if cmd.Flags().Changed("rate-upper") {
				bounds.RateUpper = &rateUpper
			}
			if cmd.Flags().Changed("fault-count-limit") {
				bounds.FaultCountLimit = &faultCountLimit
			}

			if sqlOnly {
				sqlText, params, err := query.ToSQL(expression, bounds)
				if err != nil {
					return err
				}
				fmt.Println(sqlText)
				color.New(color.FgCyan).Printf("parameters: %v\n", params)
				return nil
			}

			explicit := ""
			if len(args) == 2 {
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

			ruptures, err := db.Query(cmd.Context(), expression, bounds)
			if err != nil {
				return err
			}
			return renderRuptures(ruptures)
		},
	}

	cmd.Flags().Float64Var(&magnitudeLower, "magnitude-lower", 0, "Lower bound on rupture magnitude")
	cmd.Flags().Float64Var(&magnitudeUpper, "magnitude-upper", 0, "Upper bound on rupture magnitude")
	cmd.Flags().Float64Var(&rateLower, "rate-lower", 0, "Lower bound on yearly rupture rate")
	cmd.Flags().Float64Var(&rateUpper, "rate-upper", 0, "Upper bound on yearly rupture rate")
	cmd.Flags().IntVar(&limit, "limit", query.DefaultLimit, "Limit on the number of returned ruptures")
	cmd.Flags().IntVar(&faultCountLimit, "fault-count-limit", 0, "Limit on the number of faults in a rupture")
	cmd.Flags().BoolVar(&sqlOnly, "sql-only", false, "Print the compiled SQL and parameters without executing")
	return cmd
}

// renderRuptures prints ruptures as a table ordered by rate descending.
func renderRuptures(ruptures map[int64]nshmdb.Rupture) error {
	if len(ruptures) == 0 {
		pterm.Info.Println("No ruptures matched the query")
		return nil
	}

	ordered := make([]nshmdb.Rupture, 0, len(ruptures))
	for _, rupture := range ruptures {
		ordered = append(ordered, rupture)
	}
	sort.Slice(ordered, func(i, j int) bool {
		ri, rj := ordered[i].Rate, ordered[j].Rate
		switch {
		case ri == nil:
			return false
		case rj == nil:
			return true
		default:
			return *ri > *rj
		}
	})

	data := pterm.TableData{{"Rupture", "Magnitude", "Area", "Length", "Rate", "Faults"}}
	for _, rupture := range ordered {
		rate := "-"
		if rupture.Rate != nil {
			rate = fmt.Sprintf("%.3g", *rupture.Rate)
		}
		names := make([]string, 0, len(rupture.Faults))
		for name := range rupture.Faults {
			names = append(names, name)
		}
		sort.Strings(names)
		data = append(data, []string{
			fmt.Sprintf("%d", rupture.ID),
			fmt.Sprintf("%.2f", rupture.Magnitude),
			fmt.Sprintf("%.3g", rupture.Area),
			fmt.Sprintf("%.3g", rupture.Length),
			rate,
			fmt.Sprintf("%v", names),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
