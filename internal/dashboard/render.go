package dashboard

import (
	"fmt"

	"github.com/KaramelBytes/depdash/internal/aggregate"
	"github.com/KaramelBytes/depdash/internal/dataset"
	"github.com/KaramelBytes/depdash/internal/filter"
)

// View is everything the presentation layer draws for one state.
type View struct {
	Source       string                   `json:"source"`
	State        State                    `json:"state"`
	Population   int                      `json:"population"`
	Total        int                      `json:"total"`
	Headline     []aggregate.Metric       `json:"headline"`
	Status       StatusSplit              `json:"status"`
	MarkerCounts []aggregate.Level        `json:"marker_counts"`
	YearGroups   []aggregate.BreakdownRow `json:"year_groups"`
	Factors      []aggregate.Metric       `json:"factors"`
	National     []NationalComparison     `json:"national"`
	Pyramid      []aggregate.Level        `json:"pyramid"`
	Heatmap      aggregate.Matrix         `json:"heatmap"`
	Provisions   []aggregate.Metric       `json:"provisions"`
	Attendance   AttendanceView           `json:"attendance"`
	Outcomes     []Outcome                `json:"outcomes"`
	Insights     Insights                 `json:"insights"`
}

// StatusSplit is the disadvantaged / not disadvantaged pie.
type StatusSplit struct {
	Disadvantaged    int `json:"disadvantaged"`
	NotDisadvantaged int `json:"not_disadvantaged"`
}

// NationalComparison sets the filtered rate beside the national one.
type NationalComparison struct {
	Label    string  `json:"label"`
	School   float64 `json:"school"`
	National float64 `json:"national"`
	Source   string  `json:"source"`
}

// AttendanceView summarizes the attendance column.
type AttendanceView struct {
	Summary aggregate.Summary  `json:"summary"`
	Bands   []aggregate.Bucket `json:"bands"`
}

// Outcome is one measure averaged per number of disadvantage markers.
type Outcome struct {
	Measure string                   `json:"measure"`
	ByLevel []aggregate.GroupAverage `json:"by_level"`
}

// Insights are the headline call-outs under the charts.
type Insights struct {
	Threshold           int              `json:"threshold"`
	MultipleDeprivation aggregate.Metric `json:"multiple_deprivation"`
	ChildProtection     int              `json:"child_protection"`
	LookedAfter         int              `json:"looked_after"`
}

// Render filters the dataset by state and computes every chart. It returns
// an error only for an unknown marker name.
func (d *Dashboard) Render(state State) (*View, error) {
	pred, err := d.settings.Predicate(state)
	if err != nil {
		return nil, err
	}
	s := d.settings
	c := s.Columns
	rows := filter.Apply(d.data.Records, pred)
	level := aggregate.IntLevel(c.DisadvantageCount)
	disadvantaged := s.test(MarkerDisadvantaged)

	v := &View{
		Source:     d.data.Source,
		State:      state.copy(),
		Population: len(d.data.Records),
		Total:      len(rows),
	}
	for _, f := range headlineFactors {
		v.Headline = append(v.Headline, aggregate.Measure(f.label, rows, s.test(f.marker)))
	}
	dis := aggregate.CountWhere(rows, disadvantaged)
	v.Status = StatusSplit{Disadvantaged: dis, NotDisadvantaged: len(rows) - dis}
	v.MarkerCounts = aggregate.LevelCounts(rows, level)
	v.YearGroups = aggregate.Breakdown(rows, aggregate.FieldKey(c.YearGroup), disadvantaged)
	for _, f := range vulnerabilityFactors {
		v.Factors = append(v.Factors, aggregate.Measure(f.label, rows, s.test(f.marker)))
	}
	for _, n := range s.National {
		m, err := s.Marker(n.Marker)
		if err != nil {
			return nil, fmt.Errorf("national average %q: %w", n.Label, err)
		}
		v.National = append(v.National, NationalComparison{
			Label:    n.Label,
			School:   aggregate.PercentageWhere(rows, m.Condition.Holds),
			National: n.Rate,
			Source:   n.Source,
		})
	}
	v.Pyramid = aggregate.PyramidLevels(rows, level, aggregate.MaxLevel(rows, level))

	cols := make([]aggregate.Column, len(heatmapFactors))
	for i, f := range heatmapFactors {
		cols[i] = aggregate.Column{Label: f.label, Test: s.test(f.marker)}
	}
	v.Heatmap = aggregate.CrossTab(rows, aggregate.FieldKey(c.YearGroup), cols)

	for _, g := range aggregate.GroupBy(rows, aggregate.FieldKey(provisionField)) {
		v.Provisions = append(v.Provisions, aggregate.Metric{
			Label:      g.Key,
			Count:      len(g.Records),
			Total:      len(rows),
			Percentage: aggregate.Percentage(len(g.Records), len(rows)),
		})
	}

	attendance := aggregate.FloatField(c.Attendance)
	v.Attendance = AttendanceView{
		Summary: aggregate.Summarize(rows, attendance),
		Bands:   aggregate.BucketDistribution(rows, attendance, s.AttendanceBands),
	}
	v.Outcomes = d.outcomes(rows, level)

	threshold := s.MultipleDeprivationThreshold
	v.Insights = Insights{
		Threshold: threshold,
		MultipleDeprivation: aggregate.Measure("Multiple deprivation", rows, func(r dataset.Record) bool {
			l, ok := level(r)
			return ok && l >= threshold
		}),
		ChildProtection: aggregate.CountWhere(rows, s.test(MarkerChildProtection)),
		LookedAfter:     aggregate.CountWhere(rows, s.test(MarkerLookedAfter)),
	}
	return v, nil
}

// outcomes averages attendance, suspensions and each score subject per
// disadvantage count. Records without a parseable count are left out.
func (d *Dashboard) outcomes(rows dataset.RecordSet, level aggregate.LevelFunc) []Outcome {
	c := d.settings.Columns
	leveled := filter.Apply(rows, func(r dataset.Record) bool {
		_, ok := level(r)
		return ok
	})
	key := aggregate.LevelKey(level)
	out := []Outcome{
		{Measure: "Attendance %", ByLevel: aggregate.AverageByGroup(leveled, key, aggregate.FloatField(c.Attendance))},
		{Measure: "Suspensions", ByLevel: aggregate.AverageByGroup(leveled, key, aggregate.IntField(c.Suspensions))},
	}
	scale := aggregate.NewScoreScale(d.settings.ScoreLevels)
	scores := d.ScoreColumns()
	for _, p := range d.settings.ScorePrefixes {
		cols, ok := scores[p]
		if !ok {
			continue
		}
		out = append(out, Outcome{
			Measure: p,
			ByLevel: aggregate.AverageByGroup(leveled, key, scale.Numeric(cols)),
		})
	}
	return out
}
