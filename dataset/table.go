package dataset

import (
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
)

// Kind is the type a column was parsed as
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	default:
		return "string"
	}
}

// Column - name and type of a table column
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"-"`
}

// Value is a single nullable cell. The zero Value is a null string.
type Value struct {
	kind  Kind
	valid bool
	s     string
	i     int64
	f     float64
	t     time.Time
}

func NullValue(kind Kind) Value {
	return Value{kind: kind}
}

func StringValue(s string) Value {
	return Value{kind: KindString, valid: true, s: s}
}

func IntValue(i int64) Value {
	return Value{kind: KindInt, valid: true, i: i}
}

func FloatValue(f float64) Value {
	return Value{kind: KindFloat, valid: true, f: f}
}

func DateValue(t time.Time) Value {
	return Value{kind: KindDate, valid: true, t: t}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return !v.valid
}

// Int returns the integer held by an int cell
func (v Value) Int() (int64, bool) {
	if !v.valid || v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Float returns the number held by an int or float cell
func (v Value) Float() (float64, bool) {
	if !v.valid {
		return 0, false
	}
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	}
	return 0, false
}

// Time returns the instant held by a date cell
func (v Value) Time() (time.Time, bool) {
	if !v.valid || v.kind != KindDate {
		return time.Time{}, false
	}
	return v.t, true
}

// String renders the cell the way it would appear in a CSV file, nulls are empty
func (v Value) String() string {
	if !v.valid {
		return ""
	}
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindDate:
		if v.t.Equal(truncateDay(v.t)) {
			return v.t.Format(dateLayout)
		}
		return v.t.Format(time.RFC3339)
	}
	return v.s
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}
	switch v.kind {
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		return json.Marshal(v.f)
	}
	return json.Marshal(v.String())
}

// interface{} form used by encoders that do not know about Value
func (v Value) native() interface{} {
	if !v.valid {
		return nil
	}
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	}
	return v.String()
}

// Row is indexed by column position
type Row []Value

// Table is an immutable, column-typed relation. Operations return new tables.
type Table struct {
	columns []Column
	rows    []Row
}

func newTable(columns []Column, rows []Row) *Table {
	return &Table{columns: columns, rows: rows}
}

func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the named column or -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Value returns the cell at row i of the named column
func (t *Table) Value(i int, column string) (Value, bool) {
	idx := t.ColumnIndex(column)
	if idx < 0 || i < 0 || i >= len(t.rows) {
		return Value{}, false
	}
	return t.rows[i][idx], true
}

// Filter returns a table with the rows keep accepts, columns unchanged
func (t *Table) Filter(keep func(Row) bool) *Table {
	rows := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return newTable(t.columns, rows)
}

// Rename returns a table whose columns are renamed through names. Columns
// absent from names keep their name.
func (t *Table) Rename(names map[string]string) *Table {
	columns := make([]Column, len(t.columns))
	for i, c := range t.columns {
		if to, ok := names[c.Name]; ok {
			c.Name = to
		}
		columns[i] = c
	}
	return newTable(columns, t.rows)
}

// Records returns the header followed by every row rendered as text
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.rows)+1)
	records = append(records, t.ColumnNames())
	for _, r := range t.rows {
		record := make([]string, len(r))
		for i, v := range r {
			record[i] = v.String()
		}
		records = append(records, record)
	}
	return records
}

// Maps returns one column-name keyed map per row
func (t *Table) Maps() []map[string]interface{} {
	out := make([]map[string]interface{}, len(t.rows))
	for i, r := range t.rows {
		m := make(map[string]interface{}, len(t.columns))
		for j, c := range t.columns {
			m[c.Name] = r[j].native()
		}
		out[i] = m
	}
	return out
}

// WriteCSV writes the table, header first
func (t *Table) WriteCSV(w io.Writer) error {
	writer := gocsv.DefaultCSVWriter(w)
	for _, record := range t.Records() {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

type jsonTable struct {
	Columns []string           `json:"columns"`
	Rows    []map[string]Value `json:"rows"`
}

func (t *Table) MarshalJSON() ([]byte, error) {
	rows := make([]map[string]Value, len(t.rows))
	for i, r := range t.rows {
		m := make(map[string]Value, len(t.columns))
		for j, c := range t.columns {
			m[c.Name] = r[j]
		}
		rows[i] = m
	}
	return json.Marshal(jsonTable{Columns: t.ColumnNames(), Rows: rows})
}
