package dataset

import (
	"errors"
	"fmt"
)

// Load errors. All of them are fatal: there is no partial table.
var (
	ErrParse         = errors.New("parse error")
	ErrMissingColumn = errors.New("missing required column")
	ErrDuplicateDate = errors.New("duplicate date")
)

// ParseError reports a cell that could not be converted.
type ParseError struct {
	Err    error
	Column string
	Value  string
	Row    int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, column %q: cannot parse %q: %v", e.Row, e.Column, e.Value, e.Err)
}

// Unwrap lets errors.Is match both ErrParse and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
