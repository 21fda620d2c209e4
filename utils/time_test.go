package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportTime(t *testing.T) {
	ts, date := ReportTime(time.Date(2020, 5, 26, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, int64(1590451200), ts)
	assert.Equal(t, "2020-05-26", date)

	// 2020-05-26 01:00 in GMT+8 is still the 25th in UTC
	ts, date = ReportTime(time.Date(2020, 5, 26, 1, 0, 0, 0, time.FixedZone("GMT+8", 8*3600)))
	assert.Equal(t, int64(1590364800), ts)
	assert.Equal(t, "2020-05-25", date)
}

func TestDaysBefore(t *testing.T) {
	now := time.Date(2020, 5, 26, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(1590451200), DaysBefore(now, 0))
	assert.Equal(t, int64(1590451200-20*86400), DaysBefore(now, 20))
}

func TestEnNameToKey(t *testing.T) {
	mapping := map[string]string{
		"England":                  "england",
		"Yorkshire and The Humber": "yorkshire_and_the_humber",
		"Bristol, City of":         "bristol_city_of",
		"St. Helens":               "st_helens",
		" County Durham ":          "county_durham",
	}

	for name, key := range mapping {
		assert.Equal(t, key, EnNameToKey(name), "wrong key")
	}
}
