package aggregate

import (
	"github.com/KaramelBytes/depdash/internal/dataset"
	"github.com/KaramelBytes/depdash/internal/filter"
)

// Column is one labeled test of a cross-tabulation.
type Column struct {
	Label string
	Test  filter.Predicate
}

// Matrix holds row-major percentages: Values[i][j] is the share of group
// Rows[i] satisfying Columns[j].
type Matrix struct {
	Rows    []string    `json:"rows"`
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
	Sizes   []int       `json:"sizes"`
}

// CrossTab groups set by rowKey and computes each cell independently as
// PercentageWhere(group, column.Test).
func CrossTab(set dataset.RecordSet, rowKey KeyFunc, cols []Column) Matrix {
	groups := GroupBy(set, rowKey)
	m := Matrix{
		Rows:    make([]string, len(groups)),
		Columns: make([]string, len(cols)),
		Values:  make([][]float64, len(groups)),
		Sizes:   make([]int, len(groups)),
	}
	for j, c := range cols {
		m.Columns[j] = c.Label
	}
	for i, g := range groups {
		m.Rows[i] = g.Key
		m.Sizes[i] = len(g.Records)
		row := make([]float64, len(cols))
		for j, c := range cols {
			row[j] = PercentageWhere(g.Records, c.Test)
		}
		m.Values[i] = row
	}
	return m
}
