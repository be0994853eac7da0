package dashboard

import (
	"fmt"

	"github.com/KaramelBytes/depdash/internal/filter"
)

// Marker checkbox names.
const (
	MarkerDisadvantaged        = "disadvantaged"
	MarkerFSM                  = "fsm"
	MarkerPupilPremium         = "pupil_premium"
	MarkerSEN                  = "sen"
	MarkerYoungCarer           = "young_carer"
	MarkerLookedAfter          = "looked_after"
	MarkerChildProtection      = "child_protection"
	MarkerL3Response           = "l3_response"
	MarkerAlternativeProvision = "alternative_provision"
)

// Marker is one disadvantage checkbox and the test behind it.
type Marker struct {
	Name      string
	Label     string
	Condition filter.Condition
}

// Markers returns the checkbox catalog in display order.
func (s Settings) Markers() []Marker {
	c := s.Columns
	matches := make([]string, 0, len(s.ProvisionRules))
	for _, r := range s.ProvisionRules {
		matches = append(matches, r.Match)
	}
	return []Marker{
		{Name: MarkerDisadvantaged, Label: "Disadvantaged", Condition: filter.Equals{Field: c.Disadvantaged, Value: "Y"}},
		{Name: MarkerFSM, Label: "Ever 6 FSM", Condition: filter.Equals{Field: c.FSM, Value: "Yes"}},
		{Name: MarkerPupilPremium, Label: "Pupil Premium", Condition: filter.Equals{Field: c.PupilPremium, Value: "Yes"}},
		{Name: MarkerSEN, Label: "SEN", Condition: filter.Equals{Field: c.SEN, Value: "Yes"}},
		{Name: MarkerYoungCarer, Label: "Young Carer", Condition: filter.Equals{Field: c.YoungCarer, Value: "Yes"}},
		{Name: MarkerLookedAfter, Label: "Looked After", Condition: filter.NonEmpty{Field: c.LookedAfter}},
		{Name: MarkerChildProtection, Label: "Child Protection", Condition: filter.NonEmpty{Field: c.ChildProtection}},
		{Name: MarkerL3Response, Label: "L3 Response", Condition: filter.Equals{Field: c.L3Response, Value: "Yes"}},
		{Name: MarkerAlternativeProvision, Label: "Alternative Provision", Condition: filter.AnyOf(c.RegForm, matches...)},
	}
}

// Marker looks up a checkbox by name.
func (s Settings) Marker(name string) (Marker, error) {
	for _, m := range s.Markers() {
		if m.Name == name {
			return m, nil
		}
	}
	return Marker{}, fmt.Errorf("unknown marker: %s", name)
}

// test resolves one of the built-in marker names above.
func (s Settings) test(name string) filter.Predicate {
	m, err := s.Marker(name)
	if err != nil {
		return filter.None
	}
	return m.Condition.Holds
}

// factor is a labeled marker used by the vulnerability and heatmap charts.
type factor struct {
	label  string
	marker string
}

var vulnerabilityFactors = []factor{
	{"SEN", MarkerSEN},
	{"Ever 6 FSM", MarkerFSM},
	{"Pupil Premium", MarkerPupilPremium},
	{"Child Protection", MarkerChildProtection},
	{"L3 Response", MarkerL3Response},
	{"Young Carers", MarkerYoungCarer},
	{"Looked After", MarkerLookedAfter},
}

var headlineFactors = []factor{
	{"Disadvantaged", MarkerDisadvantaged},
	{"Ever 6 FSM", MarkerFSM},
	{"SEN", MarkerSEN},
	{"Pupil Premium", MarkerPupilPremium},
}

var heatmapFactors = []factor{
	{"Disadvantaged", MarkerDisadvantaged},
	{"SEN", MarkerSEN},
	{"FSM", MarkerFSM},
	{"Pupil Premium", MarkerPupilPremium},
	{"Young Carer", MarkerYoungCarer},
}
