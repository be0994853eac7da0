package aggregate

import (
	"github.com/KaramelBytes/depdash/internal/dataset"
	"github.com/montanaflynn/stats"
)

// GroupAverage is the mean of a numeric field within one group. SampleSize
// counts only records with a parseable value and may be below Total. When
// SampleSize is 0, HasData is false and Mean is meaningless.
type GroupAverage struct {
	Key        string  `json:"key"`
	Mean       float64 `json:"mean"`
	SampleSize int     `json:"sample_size"`
	Total      int     `json:"total"`
	HasData    bool    `json:"has_data"`
}

// Average returns the mean of the parseable values of fn and how many there
// were. ok is false when no record has a value.
func Average(set dataset.RecordSet, fn NumericFunc) (mean float64, n int, ok bool) {
	vals := Values(set, fn)
	if len(vals) == 0 {
		return 0, 0, false
	}
	m, err := stats.Mean(vals)
	if err != nil {
		return 0, 0, false
	}
	return m, len(vals), true
}

// AverageByGroup averages fn within each group of key. Unparseable values
// are excluded from both numerator and denominator.
func AverageByGroup(set dataset.RecordSet, key KeyFunc, fn NumericFunc) []GroupAverage {
	groups := GroupBy(set, key)
	out := make([]GroupAverage, len(groups))
	for i, g := range groups {
		m, n, ok := Average(g.Records, fn)
		out[i] = GroupAverage{Key: g.Key, Mean: m, SampleSize: n, Total: len(g.Records), HasData: ok}
	}
	return out
}

// Summary describes the parseable values of a numeric field.
type Summary struct {
	N       int     `json:"n"`
	Missing int     `json:"missing"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	HasData bool    `json:"has_data"`
}

// Summarize computes mean, median and range of fn over set.
func Summarize(set dataset.RecordSet, fn NumericFunc) Summary {
	vals := Values(set, fn)
	s := Summary{N: len(vals), Missing: len(set) - len(vals)}
	if len(vals) == 0 {
		return s
	}
	data := stats.Float64Data(vals)
	s.Mean, _ = data.Mean()
	s.Median, _ = data.Median()
	s.Min, _ = data.Min()
	s.Max, _ = data.Max()
	s.HasData = true
	return s
}
