package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/KaramelBytes/depdash/internal/dataset"
)

// Condition is a single field test used by a checkbox criterion.
type Condition interface {
	Holds(dataset.Record) bool
	String() string
}

// Criterion is one selectable checkbox. Inactive criteria are ignored.
type Criterion struct {
	Name      string
	Active    bool
	Condition Condition
}

// Conjunction passes records satisfying every active criterion. With no
// active criterion it returns All.
func Conjunction(criteria ...Criterion) Predicate {
	var conds []Condition
	for _, c := range criteria {
		if c.Active && c.Condition != nil {
			conds = append(conds, c.Condition)
		}
	}
	if len(conds) == 0 {
		return All
	}
	return func(r dataset.Record) bool {
		for _, c := range conds {
			if !c.Holds(r) {
				return false
			}
		}
		return true
	}
}

// Equals holds when the raw field value equals Value exactly.
type Equals struct {
	Field string
	Value string
}

func (c Equals) Holds(r dataset.Record) bool { return r.Get(c.Field) == c.Value }

func (c Equals) String() string { return fmt.Sprintf("%s == %q", c.Field, c.Value) }

// NonEmpty holds when the field is non-empty after trimming whitespace.
type NonEmpty struct {
	Field string
}

func (c NonEmpty) Holds(r dataset.Record) bool { return r.Trimmed(c.Field) != "" }

func (c NonEmpty) String() string { return fmt.Sprintf("%s is set", c.Field) }

// Pattern holds when the regular expression matches anywhere in the field.
type Pattern struct {
	Field string
	Re    *regexp.Regexp
}

// Matches compiles expr into a Pattern condition.
func Matches(field, expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("compile pattern for %s: %w", field, err)
	}
	return Pattern{Field: field, Re: re}, nil
}

// AnyOf builds a Pattern matching any of the literal substrings. With no
// substrings the pattern never matches.
func AnyOf(field string, substrings ...string) Pattern {
	parts := make([]string, 0, len(substrings))
	for _, s := range substrings {
		if s != "" {
			parts = append(parts, regexp.QuoteMeta(s))
		}
	}
	if len(parts) == 0 {
		return Pattern{Field: field, Re: regexp.MustCompile(`[^\s\S]`)}
	}
	return Pattern{Field: field, Re: regexp.MustCompile(strings.Join(parts, "|"))}
}

func (c Pattern) Holds(r dataset.Record) bool { return c.Re.MatchString(r.Get(c.Field)) }

func (c Pattern) String() string { return fmt.Sprintf("%s =~ /%s/", c.Field, c.Re) }

// Func adapts an arbitrary predicate into a Condition.
type Func struct {
	Desc string
	Fn   Predicate
}

func (c Func) Holds(r dataset.Record) bool { return c.Fn(r) }

func (c Func) String() string { return c.Desc }
