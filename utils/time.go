package utils

import (
	"time"
)

const DateLayout = "2006-01-02"

// ReportTime returns the unix time of t's UTC day start together with the
// day formatted as YYYY-MM-DD
func ReportTime(t time.Time) (int64, string) {
	year, month, day := t.UTC().Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return start.Unix(), start.Format(DateLayout)
}

// DaysBefore returns the unix time of the UTC day start n days before t
func DaysBefore(t time.Time, n int) int64 {
	ts, _ := ReportTime(t.AddDate(0, 0, -n))
	return ts
}
