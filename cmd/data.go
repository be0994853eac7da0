package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/depdash/internal/dashboard"
)

// openDashboard loads the configured dataset through the shared cache and
// builds the dashboard over it. Missing configured columns are a warning:
// the figures that depend on them simply come out empty.
func openDashboard(cmd *cobra.Command) (*dashboard.Dashboard, error) {
	c, err := requireConfig()
	if err != nil {
		return nil, err
	}
	path := dataPath
	if path == "" {
		path = c.DataPath
	}
	if path == "" {
		return nil, fmt.Errorf("no dataset: pass --data or run 'depdash config set data_path <file>'")
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	opt, err := c.LoadOptions()
	if err != nil {
		return nil, err
	}
	ds, err := cache.Load(path, opt)
	if err != nil {
		return nil, err
	}
	if len(ds.DuplicateColumns) > 0 {
		logger.Warn("duplicate columns in dataset", zap.Strings("columns", ds.DuplicateColumns))
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: duplicate columns, last one kept: %s\n", strings.Join(ds.DuplicateColumns, "; "))
	}
	d := dashboard.New(ds, c.Settings())
	if missing := d.MissingColumns(); len(missing) > 0 {
		logger.Warn("configured columns missing from dataset", zap.Strings("columns", missing))
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: missing columns: %s\n", strings.Join(missing, "; "))
	}
	return d, nil
}
