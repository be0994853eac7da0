package aggregate

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/depdash/internal/dataset"
)

// Level is one rung of the severity ladder.
type Level struct {
	Level      int     `json:"level"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MaxLevel returns the highest parseable, non-negative level in set, or 0.
func MaxLevel(set dataset.RecordSet, fn LevelFunc) int {
	max := 0
	for _, r := range set {
		if l, ok := fn(r); ok && l > max {
			max = l
		}
	}
	return max
}

// PyramidLevels returns every level from maxLevel down to 0, including
// levels nobody is at. Levels above maxLevel count toward maxLevel; negative
// or unparseable levels are excluded. Percentages are of len(set).
func PyramidLevels(set dataset.RecordSet, fn LevelFunc, maxLevel int) []Level {
	if maxLevel < 0 {
		maxLevel = 0
	}
	counts := make([]int, maxLevel+1)
	for _, r := range set {
		l, ok := fn(r)
		if !ok || l < 0 {
			continue
		}
		if l > maxLevel {
			l = maxLevel
		}
		counts[l]++
	}
	out := make([]Level, 0, maxLevel+1)
	for l := maxLevel; l >= 0; l-- {
		out = append(out, Level{
			Level:      l,
			Label:      MarkerLabel(l),
			Count:      counts[l],
			Percentage: Percentage(counts[l], len(set)),
		})
	}
	return out
}

// LevelCounts counts records per observed level in ascending order. Unlike
// PyramidLevels only levels present in set appear.
func LevelCounts(set dataset.RecordSet, fn LevelFunc) []Level {
	counts := map[int]int{}
	for _, r := range set {
		if l, ok := fn(r); ok {
			counts[l]++
		}
	}
	levels := make([]int, 0, len(counts))
	for l := range counts {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	out := make([]Level, len(levels))
	for i, l := range levels {
		out[i] = Level{Level: l, Label: MarkerLabel(l), Count: counts[l], Percentage: Percentage(counts[l], len(set))}
	}
	return out
}

// MarkerLabel renders "1 marker" or "N markers".
func MarkerLabel(n int) string {
	if n == 1 {
		return "1 marker"
	}
	return fmt.Sprintf("%d markers", n)
}

// LevelKey groups records by their level; unparseable levels share the key "".
func LevelKey(fn LevelFunc) KeyFunc {
	return func(r dataset.Record) string {
		l, ok := fn(r)
		if !ok {
			return ""
		}
		return fmt.Sprintf("%d", l)
	}
}
