package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/depdash/internal/aggregate"
	"github.com/KaramelBytes/depdash/internal/dashboard"
	"github.com/KaramelBytes/depdash/internal/enrich"
	"github.com/KaramelBytes/depdash/internal/filter"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List dataset columns, how many values each has, and the role it plays",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDashboard(cmd)
		if err != nil {
			return err
		}
		data := d.Data()
		roles := columnRoles(d.Settings().Columns)
		for prefix, cols := range d.ScoreColumns() {
			for _, c := range cols {
				roles[c] = "score: " + prefix
			}
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d records, %d columns\n", data.Source, len(data.Records), len(data.Header))
		for _, h := range data.Header {
			n := aggregate.CountWhere(data.Records, filter.NonEmpty{Field: h}.Holds)
			if role, ok := roles[h]; ok {
				fmt.Fprintf(out, "- %s (%d non-empty) [%s]\n", h, n, role)
			} else {
				fmt.Fprintf(out, "- %s (%d non-empty)\n", h, n)
			}
		}
		if missing := d.MissingColumns(); len(missing) > 0 {
			fmt.Fprintln(out, "Missing configured columns:")
			for _, m := range missing {
				fmt.Fprintf(out, "- %s\n", m)
			}
		}
		return nil
	},
}

func columnRoles(c dashboard.Columns) map[string]string {
	roles := map[string]string{
		c.YearGroup:         "year_group",
		c.Disadvantaged:     "disadvantaged",
		c.DisadvantageCount: "disadvantage_count",
		c.FSM:               "fsm",
		c.PupilPremium:      "pupil_premium",
		c.SEN:               "sen",
		c.YoungCarer:        "young_carer",
		c.LookedAfter:       "looked_after",
		c.ChildProtection:   "child_protection",
		c.L3Response:        "l3_response",
		c.RegForm:           "reg_form",
		c.Attendance:        "attendance",
		c.Suspensions:       "suspensions",
		enrich.ProvisionField: "derived",
	}
	delete(roles, "")
	return roles
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
