// Package parsererror defines the error types shared by the conversion pipeline.
package parsererror

import "fmt"

// DecodeError reports that the input could not be tokenized into rows at all.
// This is the only fatal condition in a conversion; no partial output is
// produced when it occurs.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to decode %s into rows: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to decode input into rows: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RowError carries the diagnostic context for a row that was skipped during
// normalization. It never aborts a conversion; it only feeds the logs.
type RowError struct {
	Index int
	Row   []string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d skipped (%q): %v", e.Index, e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
