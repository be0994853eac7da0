// Package filter builds row-inclusion predicates from filter selections.
//
// Values within a multi-select are OR-combined; checkbox criteria are
// AND-combined. Every predicate is pure and safe to reuse across renders.
package filter

import (
	"github.com/KaramelBytes/depdash/internal/dataset"
)

// Predicate decides whether a record is included.
type Predicate func(dataset.Record) bool

// All passes every record.
func All(dataset.Record) bool { return true }

// None passes no record.
func None(dataset.Record) bool { return false }

// MultiValue passes records whose field value is exactly one of allowed.
// An empty allowed set passes nothing: "show all" means selecting every
// value, not selecting none.
func MultiValue(field string, allowed []string) Predicate {
	if len(allowed) == 0 {
		return None
	}
	set := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}
	return func(r dataset.Record) bool {
		_, ok := set[r.Get(field)]
		return ok
	}
}

// And passes records accepted by every predicate. Nil entries are skipped
// and And() passes everything.
func And(preds ...Predicate) Predicate {
	active := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return All
	}
	return func(r dataset.Record) bool {
		for _, p := range active {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Apply returns the records accepted by p in their original order. The
// result is freshly allocated; set is not modified.
func Apply(set dataset.RecordSet, p Predicate) dataset.RecordSet {
	if p == nil {
		p = All
	}
	out := make(dataset.RecordSet, 0, len(set))
	for _, r := range set {
		if p(r) {
			out = append(out, r)
		}
	}
	return out
}
