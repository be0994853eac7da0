package aggregate

import (
	"sort"
	"strconv"

	"github.com/KaramelBytes/depdash/internal/dataset"
	"github.com/KaramelBytes/depdash/internal/filter"
)

// KeyFunc derives a grouping key from a record.
type KeyFunc func(dataset.Record) string

// FieldKey groups by the raw value of field.
func FieldKey(field string) KeyFunc {
	return func(r dataset.Record) string { return r.Get(field) }
}

// Group is one partition of a record set.
type Group struct {
	Key     string
	Records dataset.RecordSet
}

// GroupBy partitions set by key. Only keys present in set produce groups,
// returned in natural order; records keep their relative order.
func GroupBy(set dataset.RecordSet, key KeyFunc) []Group {
	idx := map[string]int{}
	var groups []Group
	for _, r := range set {
		k := key(r)
		i, ok := idx[k]
		if !ok {
			i = len(groups)
			idx[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	sort.SliceStable(groups, func(i, j int) bool { return NaturalLess(groups[i].Key, groups[j].Key) })
	return groups
}

// Distinct returns the keys present in set in natural order.
func Distinct(set dataset.RecordSet, key KeyFunc) []string {
	groups := GroupBy(set, key)
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

// BreakdownRow is one group's count and share of records accepted by a predicate.
type BreakdownRow struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Breakdown computes, per group of key, how many records satisfy p.
func Breakdown(set dataset.RecordSet, key KeyFunc, p filter.Predicate) []BreakdownRow {
	groups := GroupBy(set, key)
	out := make([]BreakdownRow, len(groups))
	for i, g := range groups {
		c := CountWhere(g.Records, p)
		out[i] = BreakdownRow{Key: g.Key, Count: c, Total: len(g.Records), Percentage: Percentage(c, len(g.Records))}
	}
	return out
}

// NaturalLess orders strings with embedded runs of digits compared by value,
// so "7" < "10" and "Year 9" < "Year 11". Ties fall back to plain order.
func NaturalLess(a, b string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			si := i
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			sj := j
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na, errA := strconv.ParseUint(a[si:i], 10, 64)
			nb, errB := strconv.ParseUint(b[sj:j], 10, 64)
			if errA == nil && errB == nil && na != nb {
				return na < nb
			}
			if errA != nil || errB != nil {
				if a[si:i] != b[sj:j] {
					return a[si:i] < b[sj:j]
				}
			}
			continue
		}
		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}
	if len(a)-i != len(b)-j {
		return len(a)-i < len(b)-j
	}
	return a < b
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
