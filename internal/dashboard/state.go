package dashboard

import (
	"github.com/KaramelBytes/depdash/internal/filter"
)

// State is the filter selection for one render. Methods return modified
// copies; a State is never changed in place.
type State struct {
	YearGroups []string `json:"year_groups"`
	Provisions []string `json:"provisions"`
	Markers    []string `json:"markers"`
}

// FilterOptions lists the values filter widgets may offer.
type FilterOptions struct {
	YearGroups []string       `json:"year_groups"`
	Provisions []string       `json:"provisions"`
	Markers    []MarkerOption `json:"markers"`
}

// MarkerOption is a checkbox name and its display label.
type MarkerOption struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// DefaultState selects every year group and provision with no checkbox.
func DefaultState(opts FilterOptions) State {
	return State{
		YearGroups: clone(opts.YearGroups),
		Provisions: clone(opts.Provisions),
	}
}

// WithYearGroups replaces the year-group selection.
func (s State) WithYearGroups(years []string) State {
	out := s.copy()
	out.YearGroups = clone(years)
	return out
}

// WithProvisions replaces the provision selection.
func (s State) WithProvisions(provisions []string) State {
	out := s.copy()
	out.Provisions = clone(provisions)
	return out
}

// WithMarker ticks or unticks a checkbox.
func (s State) WithMarker(name string, on bool) State {
	out := s.copy()
	markers := make([]string, 0, len(s.Markers)+1)
	for _, m := range s.Markers {
		if m != name {
			markers = append(markers, m)
		}
	}
	if on {
		markers = append(markers, name)
	}
	out.Markers = markers
	return out
}

func (s State) copy() State {
	return State{YearGroups: clone(s.YearGroups), Provisions: clone(s.Provisions), Markers: clone(s.Markers)}
}

func clone(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Predicate builds the row filter for state: year membership AND provision
// membership AND every ticked checkbox. An empty year or provision
// selection matches nothing.
func (s Settings) Predicate(state State) (filter.Predicate, error) {
	active := make(map[string]bool, len(state.Markers))
	for _, name := range state.Markers {
		if _, err := s.Marker(name); err != nil {
			return nil, err
		}
		active[name] = true
	}
	markers := s.Markers()
	criteria := make([]filter.Criterion, len(markers))
	for i, m := range markers {
		criteria[i] = filter.Criterion{Name: m.Name, Active: active[m.Name], Condition: m.Condition}
	}
	return filter.And(
		filter.MultiValue(s.Columns.YearGroup, state.YearGroups),
		filter.MultiValue(provisionField, state.Provisions),
		filter.Conjunction(criteria...),
	), nil
}
