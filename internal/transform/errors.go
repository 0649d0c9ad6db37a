package transform

import (
	"fmt"
	"strings"
)

// SchemaError reports columns missing from the raw dump. It is fatal to a run.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("raw dump is missing columns: %s", strings.Join(e.Missing, ", "))
}

// ParseError marks a single row whose cell could not be decoded.
type ParseError struct {
	Row    int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d column %s: %v", e.Row, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
