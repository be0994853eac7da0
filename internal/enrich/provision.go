// Package enrich adds derived fields to loaded records.
package enrich

import (
	"strings"

	"github.com/KaramelBytes/depdash/internal/dataset"
)

// ProvisionField is the derived field name added by the Enricher.
const ProvisionField = "Provision"

// DefaultProvision is the category given when no rule matches.
const DefaultProvision = "Mainstream"

// Rule maps a registration-form substring to a provision category.
type Rule struct {
	Match     string `mapstructure:"match" yaml:"match"`
	Provision string `mapstructure:"provision" yaml:"provision"`
}

// DefaultRules returns the built-in alternative-provision rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{Match: "LST", Provision: "Eduk8"},
		{Match: "AME", Provision: "Beacon"},
	}
}

// Enricher classifies records into a provision category from SourceField.
type Enricher struct {
	SourceField string
	Rules       []Rule
	Default     string
}

// New returns an Enricher reading sourceField. An empty fallback means
// DefaultProvision.
func New(sourceField string, rules []Rule, fallback string) Enricher {
	if fallback == "" {
		fallback = DefaultProvision
	}
	return Enricher{SourceField: sourceField, Rules: rules, Default: fallback}
}

// Classify returns the first rule whose Match is contained in code, or the
// default category. Rules with an empty Match never fire.
func (e Enricher) Classify(code string) string {
	for _, r := range e.Rules {
		if r.Match != "" && strings.Contains(code, r.Match) {
			return r.Provision
		}
	}
	return e.Default
}

// Enrich returns a copy of rec carrying the Provision field.
func (e Enricher) Enrich(rec dataset.Record) dataset.Record {
	return rec.With(ProvisionField, e.Classify(rec.Get(e.SourceField)))
}

// EnrichAll returns a new set with every record enriched, order preserved.
func (e Enricher) EnrichAll(set dataset.RecordSet) dataset.RecordSet {
	out := make(dataset.RecordSet, len(set))
	for i, r := range set {
		out[i] = e.Enrich(r)
	}
	return out
}

// Dataset returns a copy of ds whose records are enriched and whose header
// lists the derived field.
func (e Enricher) Dataset(ds *dataset.Dataset) *dataset.Dataset {
	header := make([]string, 0, len(ds.Header)+1)
	header = append(header, ds.Header...)
	if !ds.HasColumn(ProvisionField) {
		header = append(header, ProvisionField)
	}
	return &dataset.Dataset{Source: ds.Source, Header: header, Records: e.EnrichAll(ds.Records)}
}

// Categories lists every category the Enricher can produce: the default
// first, then rule categories in priority order without duplicates.
func (e Enricher) Categories() []string {
	out := []string{e.Default}
	seen := map[string]bool{e.Default: true}
	for _, r := range e.Rules {
		if !seen[r.Provision] {
			seen[r.Provision] = true
			out = append(out, r.Provision)
		}
	}
	return out
}
