package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/depdash/internal/dashboard"
	"github.com/KaramelBytes/depdash/internal/explore"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Filter the dashboard interactively, one command per line",
	Long: `Filter the dashboard interactively. Commands are read from stdin:

  year 7,8        provision all     marker +fsm     marker -fsm
  reset           options           show            json
  reload          help              quit

Each filter change prints the matching student count; show prints the full
report. The dataset is read once and reused until the file changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := explore.New(func() (*dashboard.Dashboard, error) {
			return openDashboard(cmd)
		}, logger)
		if err != nil {
			return err
		}
		return s.Run(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}
