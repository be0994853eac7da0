package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/depdash/internal/utils"
)

var optJSON bool

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the year groups, provisions and markers you can filter on",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDashboard(cmd)
		if err != nil {
			return err
		}
		opts := d.Options()
		out := cmd.OutOrStdout()
		if optJSON {
			b, err := utils.PrettyJSON(opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(b))
			return err
		}
		fmt.Fprintf(out, "Year groups: %s\n", strings.Join(opts.YearGroups, ", "))
		fmt.Fprintf(out, "Provisions: %s\n", strings.Join(opts.Provisions, ", "))
		fmt.Fprintln(out, "Markers:")
		for _, m := range opts.Markers {
			fmt.Fprintf(out, "  %-22s %s\n", m.Name, m.Label)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	optionsCmd.Flags().BoolVar(&optJSON, "json", false, "print as JSON")
}
