package aggregate

import (
	"strings"

	"github.com/KaramelBytes/depdash/internal/dataset"
)

// ScoreScale maps an ordinal text vocabulary to integer levels.
type ScoreScale struct {
	Levels map[string]int
}

// DefaultScoreLevels is the four-band vocabulary used by subject columns.
func DefaultScoreLevels() map[string]int {
	return map[string]int{
		"Exceeding":  4,
		"Secure":     3,
		"Developing": 2,
		"Emerging":   1,
	}
}

// NewScoreScale normalizes levels for case-insensitive lookup.
func NewScoreScale(levels map[string]int) ScoreScale {
	m := make(map[string]int, len(levels))
	for k, v := range levels {
		m[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return ScoreScale{Levels: m}
}

// Score maps a single cell. Blank or unknown text is absent, never zero.
func (s ScoreScale) Score(raw string) (int, bool) {
	k := strings.ToLower(strings.TrimSpace(raw))
	if k == "" {
		return 0, false
	}
	v, ok := s.Levels[k]
	return v, ok
}

// Numeric averages the mapped scores of columns present on a record.
// A record with no mapped value reports ok=false and contributes nothing.
func (s ScoreScale) Numeric(columns []string) NumericFunc {
	return func(r dataset.Record) (float64, bool) {
		sum, n := 0, 0
		for _, c := range columns {
			if v, ok := s.Score(r.Get(c)); ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			return 0, false
		}
		return float64(sum) / float64(n), true
	}
}

// ScoreColumns returns the header columns whose name starts with prefix,
// in header order. Matching is case-insensitive and ignores surrounding
// whitespace on the prefix.
func ScoreColumns(header []string, prefix string) []string {
	p := strings.ToLower(strings.TrimSpace(prefix))
	if p == "" {
		return nil
	}
	var out []string
	for _, h := range header {
		if strings.HasPrefix(strings.ToLower(h), p) {
			out = append(out, h)
		}
	}
	return out
}
