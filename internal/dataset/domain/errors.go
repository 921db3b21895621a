package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFeed is returned when a feed carries no data rows.
	ErrEmptyFeed = errors.New("dataset: empty feed")
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("dataset: missing column")
	// ErrNoValidRecords is returned when normalization keeps nothing from a feed.
	ErrNoValidRecords = errors.New("dataset: no valid records")
	// ErrUnsupportedFeed is returned when a feed source kind is unknown.
	ErrUnsupportedFeed = errors.New("dataset: unsupported feed")
)

// LoadError is fatal: the dataset cannot be built from the named feed.
type LoadError struct {
	Feed string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("dataset: load %s: %v", e.Feed, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// NewLoadError wraps err for feed.
func NewLoadError(feed string, err error) *LoadError {
	return &LoadError{Feed: feed, Err: err}
}

// RowError describes a single rejected row.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}
