package dataset

import (
	"math"
	"time"

	"github.com/bitmark-inc/autonomy-cases/schema"
	"github.com/bitmark-inc/autonomy-cases/utils"
)

// ToRecords converts a cleaned and renamed table into case records. DateVal,
// Area type and Area name are required; Area code, EngConfSpecimens and
// CumEngConfSpec are copied when present. Rows without a date are skipped.
func ToRecords(t *Table, updateTime time.Time) ([]schema.CaseRecord, error) {
	dateIdx, err := requireColumn(t, ColumnDateVal)
	if err != nil {
		return nil, err
	}
	typeIdx, err := requireColumn(t, ColumnAreaType)
	if err != nil {
		return nil, err
	}
	nameIdx, err := requireColumn(t, ColumnAreaName)
	if err != nil {
		return nil, err
	}
	codeIdx := t.ColumnIndex(ColumnAreaCode)
	dailyIdx := t.ColumnIndex(ColumnEngConfSpecimens)
	cumIdx := t.ColumnIndex(ColumnCumEngConfSpec)

	records := make([]schema.CaseRecord, 0, t.Len())
	for _, r := range t.rows {
		date, ok := r[dateIdx].Time()
		if !ok {
			continue
		}
		ts, day := utils.ReportTime(date)

		record := schema.CaseRecord{
			AreaType:       r[typeIdx].String(),
			AreaName:       r[nameIdx].String(),
			AreaKey:        utils.EnNameToKey(r[nameIdx].String()),
			ReportTime:     ts,
			ReportTimeDate: day,
			UpdateTime:     updateTime.UTC().Unix(),
		}
		if codeIdx >= 0 {
			record.AreaCode = r[codeIdx].String()
		}
		if dailyIdx >= 0 {
			record.DailyCases = countOf(r[dailyIdx])
		}
		if cumIdx >= 0 {
			record.CumulativeCases = countOf(r[cumIdx])
		}
		records = append(records, record)
	}

	return records, nil
}

func requireColumn(t *Table, name string) (int, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return -1, &SchemaError{Column: name, Err: ErrMissingColumn}
	}
	return idx, nil
}

// countOf reads a case count. Float cells count only when they hold a whole
// number inside the int64 range.
func countOf(v Value) *int64 {
	if n, ok := v.Int(); ok {
		return &n
	}

	f, ok := v.Float()
	if !ok || f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 {
		return nil
	}
	count := int64(f)
	return &count
}
