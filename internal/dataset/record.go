package dataset

import "strings"

// Record is one student row keyed by normalized header name.
// The zero Record has no fields; every lookup returns "".
type Record struct {
	fields map[string]string
}

// NewRecord builds a record from a header and a row of cells. Short rows are
// padded with empty values and cells beyond the header are dropped.
func NewRecord(header, cells []string) Record {
	m := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(cells) {
			m[name] = cells[i]
		} else {
			m[name] = ""
		}
	}
	return Record{fields: m}
}

// Get returns the raw value stored under field, or "" when absent.
func (r Record) Get(field string) string { return r.fields[field] }

// Lookup reports whether field exists alongside its raw value.
func (r Record) Lookup(field string) (string, bool) {
	v, ok := r.fields[field]
	return v, ok
}

// Trimmed returns the value with surrounding whitespace removed.
func (r Record) Trimmed(field string) string { return strings.TrimSpace(r.fields[field]) }

// Len reports the number of fields, derived fields included.
func (r Record) Len() int { return len(r.fields) }

// With returns a copy of r carrying an extra field. The receiver is unchanged.
func (r Record) With(field, value string) Record {
	m := make(map[string]string, len(r.fields)+1)
	for k, v := range r.fields {
		m[k] = v
	}
	m[field] = value
	return Record{fields: m}
}

// RecordSet is an ordered sequence of records.
type RecordSet []Record

// Len returns the number of records.
func (s RecordSet) Len() int { return len(s) }

// Dataset is a loaded source: its normalized header and all of its rows.
type Dataset struct {
	Source  string
	Header  []string
	Records RecordSet
	// DuplicateColumns lists header names that appeared more than once.
	// Records hold the value of the last such column.
	DuplicateColumns []string
}

// HasColumn reports whether name appears in the header.
func (d *Dataset) HasColumn(name string) bool {
	for _, h := range d.Header {
		if h == name {
			return true
		}
	}
	return false
}

// MissingColumns returns the names that are not in the header, in input order.
// Empty names are ignored.
func (d *Dataset) MissingColumns(names ...string) []string {
	var out []string
	for _, n := range names {
		if n == "" {
			continue
		}
		if !d.HasColumn(n) {
			out = append(out, n)
		}
	}
	return out
}

// NormalizeHeader replaces non-breaking spaces with ordinary spaces and trims.
func NormalizeHeader(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "\u00a0", " "))
}
