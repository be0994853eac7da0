// Package dashboard turns a filter state and a loaded dataset into a view
// model. Rendering is a pure function of the state, the settings and the
// enriched dataset; nothing here touches the terminal.
package dashboard

import (
	"github.com/KaramelBytes/depdash/internal/aggregate"
	"github.com/KaramelBytes/depdash/internal/dataset"
	"github.com/KaramelBytes/depdash/internal/enrich"
)

const provisionField = enrich.ProvisionField

// Dashboard holds one enriched dataset and the settings it is read with.
// It is read-only after New.
type Dashboard struct {
	data     *dataset.Dataset
	settings Settings
}

// New enriches ds once and returns a Dashboard over it. ds is not modified.
func New(ds *dataset.Dataset, s Settings) *Dashboard {
	if s.DefaultProvision == "" {
		s.DefaultProvision = enrich.DefaultProvision
	}
	return &Dashboard{data: s.enricher().Dataset(ds), settings: s}
}

// Data returns the enriched dataset.
func (d *Dashboard) Data() *dataset.Dataset { return d.data }

// Settings returns the settings the dashboard renders with.
func (d *Dashboard) Settings() Settings { return d.settings }

// MissingColumns lists configured columns the dataset does not have.
func (d *Dashboard) MissingColumns() []string {
	return d.data.MissingColumns(d.settings.Columns.All()...)
}

// ScoreColumns maps each configured score prefix to its matching columns.
// Prefixes without columns are omitted.
func (d *Dashboard) ScoreColumns() map[string][]string {
	out := map[string][]string{}
	for _, p := range d.settings.ScorePrefixes {
		if cols := aggregate.ScoreColumns(d.data.Header, p); len(cols) > 0 {
			out[p] = cols
		}
	}
	return out
}

// Options lists the observed year groups, every provision category the
// rules can produce, and the checkbox catalog.
func (d *Dashboard) Options() FilterOptions {
	opts := FilterOptions{
		YearGroups: aggregate.Distinct(d.data.Records, aggregate.FieldKey(d.settings.Columns.YearGroup)),
		Provisions: d.settings.enricher().Categories(),
	}
	for _, m := range d.settings.Markers() {
		opts.Markers = append(opts.Markers, MarkerOption{Name: m.Name, Label: m.Label})
	}
	return opts
}

// DefaultState selects everything the dashboard offers.
func (d *Dashboard) DefaultState() State { return DefaultState(d.Options()) }
