package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

const dateLayout = time.DateOnly

// accepted in date columns, first match wins
var dateLayouts = []string{
	dateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// cells read as missing values, the same set pandas treats as NA by default
var nullTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

func isNull(cell string) bool {
	return nullTokens[cell]
}

// ParseFunc splits raw text into records, header record first
type ParseFunc func(text string) ([][]string, error)

// ParseCSV is the default ParseFunc: standard CSV, every record must have as
// many fields as the header.
func ParseCSV(text string) ([][]string, error) {
	return gocsv.DefaultCSVReader(strings.NewReader(text)).ReadAll()
}

func parseTable(text string, parse ParseFunc, dateColumns []string) (*Table, error) {
	records, err := parse(text)
	if err != nil {
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			return nil, &ParseError{Line: csvErr.Line, Err: csvErr.Err}
		}
		return nil, &ParseError{Err: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Err: ErrEmptyInput}
	}

	header := records[0]
	body := records[1:]

	isDate := make(map[int]bool, len(dateColumns))
	for _, name := range dateColumns {
		idx := indexOf(header, name)
		if idx < 0 {
			return nil, &ParseError{Line: 1, Column: name, Err: ErrMissingColumn}
		}
		isDate[idx] = true
	}

	for i, r := range body {
		if len(r) != len(header) {
			return nil, &ParseError{
				Line: i + 2,
				Err:  fmt.Errorf("wrong number of fields: got %d, expect %d", len(r), len(header)),
			}
		}
	}

	columns := make([]Column, len(header))
	for j, name := range header {
		kind := KindDate
		if !isDate[j] {
			kind = inferKind(body, j)
		}
		columns[j] = Column{Name: name, Kind: kind}
	}

	rows := make([]Row, len(body))
	for i, r := range body {
		row := make(Row, len(r))
		for j, cell := range r {
			v, err := parseValue(cell, columns[j].Kind)
			if err != nil {
				return nil, &ParseError{Line: i + 2, Column: header[j], Value: cell, Err: err}
			}
			row[j] = v
		}
		rows[i] = row
	}

	return newTable(columns, rows), nil
}

// inferKind picks the narrowest kind every non-null cell of column j fits.
// A column without any value is a nullable int.
func inferKind(body [][]string, j int) Kind {
	kind := KindInt
	for _, r := range body {
		cell := r[j]
		if isNull(cell) {
			continue
		}
		if kind == KindInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
				continue
			}
			kind = KindFloat
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return KindString
		}
	}
	return kind
}

func parseValue(cell string, kind Kind) (Value, error) {
	if isNull(cell) {
		return NullValue(kind), nil
	}

	switch kind {
	case KindDate:
		t, err := parseDate(cell)
		if err != nil {
			return Value{}, err
		}
		return DateValue(t), nil
	case KindInt:
		i, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return Value{}, err
		}
		return IntValue(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return Value{}, err
		}
		return FloatValue(f), nil
	}
	return StringValue(cell), nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

func truncateDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
