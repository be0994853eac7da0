package dataset

import (
	"os"
	"strings"
)

// Options controls how a source file is read.
type Options struct {
	// Delimiter for CSV. If 0, chosen from the file extension.
	Delimiter rune
	// Sheet selects an XLSX worksheet by name; empty means the first sheet.
	Sheet string
}

// Loader reads one source format into a header and raw rows.
type Loader interface {
	CanLoad(path string) bool
	Rows(path string, opt Options) ([][]string, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}

// Load reads path with the first matching loader and returns the dataset.
// Every failure is a *DataSourceError.
func Load(path string, opt Options) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, sourceErr(path, "stat", err)
	}
	var l Loader
	for _, cand := range registry {
		if cand.CanLoad(path) {
			l = cand
			break
		}
	}
	if l == nil {
		return nil, sourceErr(path, "select loader", ErrUnsupported)
	}
	rows, err := l.Rows(path, opt)
	if err != nil {
		return nil, sourceErr(path, "read", err)
	}
	return fromRows(path, rows)
}

func fromRows(path string, rows [][]string) (*Dataset, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, sourceErr(path, "read header", ErrNoColumns)
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = NormalizeHeader(h)
	}
	if allEmpty(header) {
		return nil, sourceErr(path, "read header", ErrNoColumns)
	}
	// A repeated name keeps the value of its last column.
	seen := make(map[string]bool, len(header))
	names := make([]string, 0, len(header))
	var dups []string
	for _, h := range header {
		if seen[h] {
			if h != "" {
				dups = append(dups, h)
			}
			continue
		}
		seen[h] = true
		names = append(names, h)
	}
	recs := make(RecordSet, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		recs = append(recs, NewRecord(header, row))
	}
	return &Dataset{Source: path, Header: names, Records: recs, DuplicateColumns: dups}, nil
}

func allEmpty(ss []string) bool {
	for _, s := range ss {
		if s != "" {
			return false
		}
	}
	return true
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
