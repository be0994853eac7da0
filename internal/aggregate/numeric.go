package aggregate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/depdash/internal/dataset"
)

// ParseError reports a value that is not the number a metric expects. It is
// always recovered by excluding the record from that metric.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("field %q: cannot parse %q as a number", e.Field, e.Value)
}

// NumericFunc extracts a number from a record. ok is false when the value is
// missing or unparseable.
type NumericFunc func(dataset.Record) (v float64, ok bool)

// LevelFunc extracts an integer severity level from a record.
type LevelFunc func(dataset.Record) (level int, ok bool)

// ParseFloat parses a decimal with an optional trailing "%" and surrounding
// whitespace, e.g. "95.5%" or " 87.2 ". NaN and infinities are rejected.
func ParseFloat(field, raw string) (float64, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "\u00a0", " "))
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return 0, &ParseError{Field: field, Value: raw}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ParseError{Field: field, Value: raw}
	}
	return f, nil
}

// ParseInt parses a whole number such as a suspension count.
func ParseInt(field, raw string) (int, error) {
	s := strings.TrimSpace(raw)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{Field: field, Value: raw}
	}
	return n, nil
}

// FloatField reads field with ParseFloat.
func FloatField(field string) NumericFunc {
	return func(r dataset.Record) (float64, bool) {
		v, err := ParseFloat(field, r.Get(field))
		return v, err == nil
	}
}

// IntField reads field with ParseInt and reports it as a float.
func IntField(field string) NumericFunc {
	return func(r dataset.Record) (float64, bool) {
		n, err := ParseInt(field, r.Get(field))
		return float64(n), err == nil
	}
}

// IntLevel reads field with ParseInt as a severity level.
func IntLevel(field string) LevelFunc {
	return func(r dataset.Record) (int, bool) {
		n, err := ParseInt(field, r.Get(field))
		return n, err == nil
	}
}

// Values collects the parseable values of fn over set in record order.
func Values(set dataset.RecordSet, fn NumericFunc) []float64 {
	out := make([]float64, 0, len(set))
	for _, r := range set {
		if v, ok := fn(r); ok {
			out = append(out, v)
		}
	}
	return out
}
