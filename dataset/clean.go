package dataset

import (
	"sort"
	"time"
)

const (
	// upstream figures for the most recent days are still incomplete
	reportingLagDays   = 5
	minCumulativeCases = 10
)

// overridden by tests
var now = time.Now

// sortByDate orders rows ascending by each column in turn. Nulls sort last
// and ties keep their input order.
func sortByDate(t *Table, columns []string) *Table {
	idx := make([]int, len(columns))
	for i, name := range columns {
		idx[i] = t.ColumnIndex(name)
	}

	rows := make([]Row, len(t.rows))
	copy(rows, t.rows)

	sort.SliceStable(rows, func(a, b int) bool {
		for _, j := range idx {
			if c := compareDates(rows[a][j], rows[b][j]); c != 0 {
				return c < 0
			}
		}
		return false
	})

	return newTable(t.columns, rows)
}

func compareDates(a, b Value) int {
	ta, okA := a.Time()
	tb, okB := b.Time()
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	}
	return 0
}

// cutoffDate is the last specimen date considered complete, today minus the
// reporting lag, at UTC midnight
func cutoffDate() time.Time {
	return truncateDay(now().UTC()).AddDate(0, 0, -reportingLagDays)
}

// dropRecent keeps rows whose date column is on or before the cutoff
func dropRecent(t *Table, column string, cutoff time.Time) (*Table, error) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil, &SchemaError{Column: column, Err: ErrMissingColumn}
	}

	return t.Filter(func(r Row) bool {
		d, ok := r[idx].Time()
		return ok && !d.After(cutoff)
	}), nil
}

// dropLowCumulative keeps rows whose column holds more than min cases
func dropLowCumulative(t *Table, column string, min float64) (*Table, error) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil, &SchemaError{Column: column, Err: ErrMissingColumn}
	}
	if kind := t.columns[idx].Kind; kind != KindInt && kind != KindFloat {
		return nil, &SchemaError{Column: column, Err: ErrNotNumeric}
	}

	return t.Filter(func(r Row) bool {
		n, ok := r[idx].Float()
		return ok && n > min
	}), nil
}
