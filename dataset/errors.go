package dataset

import (
	"fmt"
)

var (
	ErrEmptyInput    = fmt.Errorf("empty csv")
	ErrMissingColumn = fmt.Errorf("missing column")
	ErrInvalidDate   = fmt.Errorf("invalid date")
	ErrNotNumeric    = fmt.Errorf("column is not numeric")

	ErrUnknownAreaType = fmt.Errorf("unknown area type")
)

// ParseError is returned when the raw text cannot be turned into a table:
// malformed CSV, a configured date column absent from the header, or a date
// value that does not parse.
type ParseError struct {
	Line   int // 1-based line of the offending record, 0 when not tied to one
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "parse cases csv"
	if e.Line > 0 {
		msg += fmt.Sprintf(": line %d", e.Line)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(": column %q", e.Column)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(": value %q", e.Value)
	}
	return msg + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError is returned when a cleaning filter or a view references a
// column the parsed table does not have in a usable form.
type SchemaError struct {
	Column string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("cases schema: column %q: %s", e.Column, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
