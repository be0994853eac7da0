package dataset

import (
	"errors"
	"fmt"
)

// ErrNoColumns indicates a source whose header row is empty or missing.
var ErrNoColumns = errors.New("dataset has no columns")

// ErrUnsupported indicates a source format with no registered loader.
var ErrUnsupported = errors.New("unsupported dataset format")

// DataSourceError reports a source that could not be loaded. It is fatal to
// rendering: nothing can be computed without the dataset.
type DataSourceError struct {
	Path string
	Op   string
	Err  error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

func sourceErr(path, op string, err error) error {
	return &DataSourceError{Path: path, Op: op, Err: err}
}
