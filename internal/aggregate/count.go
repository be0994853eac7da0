// Package aggregate computes summary metrics over record sets.
//
// Every function is pure and defined for empty input: percentages of an
// empty set are 0 and averages without samples report no data.
package aggregate

import (
	"github.com/KaramelBytes/depdash/internal/dataset"
	"github.com/KaramelBytes/depdash/internal/filter"
)

// CountWhere counts the records accepted by p.
func CountWhere(set dataset.RecordSet, p filter.Predicate) int {
	n := 0
	for _, r := range set {
		if p(r) {
			n++
		}
	}
	return n
}

// Percentage returns count/total*100, or 0 when total is 0.
func Percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// PercentageWhere is the share of set accepted by p, in [0, 100].
func PercentageWhere(set dataset.RecordSet, p filter.Predicate) float64 {
	return Percentage(CountWhere(set, p), len(set))
}

// Metric is a count with its share of the set it was taken from.
type Metric struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Measure builds a labeled Metric for p over set.
func Measure(label string, set dataset.RecordSet, p filter.Predicate) Metric {
	c := CountWhere(set, p)
	return Metric{Label: label, Count: c, Total: len(set), Percentage: Percentage(c, len(set))}
}
