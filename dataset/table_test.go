package dataset

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return newTable(
		[]Column{
			{Name: "name", Kind: KindString},
			{Name: "date", Kind: KindDate},
			{Name: "count", Kind: KindInt},
			{Name: "rate", Kind: KindFloat},
		},
		[]Row{
			{StringValue("a, b"), DateValue(time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)), IntValue(3), FloatValue(0.5)},
			{StringValue("c"), NullValue(KindDate), NullValue(KindInt), FloatValue(2)},
		},
	)
}

func TestValue(t *testing.T) {
	v := IntValue(42)
	n, ok := v.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)
	f, ok := v.Float()
	assert.True(t, ok)
	assert.Equal(t, float64(42), f)
	_, ok = v.Time()
	assert.False(t, ok)

	null := NullValue(KindFloat)
	assert.True(t, null.IsNull())
	assert.Equal(t, KindFloat, null.Kind())
	_, ok = null.Float()
	assert.False(t, ok)
	assert.Equal(t, "", null.String())

	assert.Equal(t, "2020-05-01", DateValue(time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)).String())
	assert.Equal(t, "2020-05-01T08:30:00Z", DateValue(time.Date(2020, 5, 1, 8, 30, 0, 0, time.UTC)).String())
	assert.Equal(t, "1.25", FloatValue(1.25).String())
}

func TestInferKind(t *testing.T) {
	body := [][]string{
		{"1", "1", "x", ""},
		{"", "2.5", "3", ""},
		{"7", "", "", ""},
	}
	assert.Equal(t, KindInt, inferKind(body, 0))
	assert.Equal(t, KindFloat, inferKind(body, 1))
	assert.Equal(t, KindString, inferKind(body, 2))
	assert.Equal(t, KindInt, inferKind(body, 3), "all empty column")

	body = [][]string{
		{"1", "NA", "2.5"},
		{"N/A", "null", "NaN"},
		{"3", "", "nan"},
	}
	assert.Equal(t, KindInt, inferKind(body, 0), "missing value tokens are skipped")
	assert.Equal(t, KindInt, inferKind(body, 1), "column of missing value tokens")
	assert.Equal(t, KindFloat, inferKind(body, 2))

	v, err := parseValue("NA", KindInt)
	assert.NoError(t, err)
	assert.True(t, v.IsNull())
	assert.Equal(t, KindInt, v.Kind())
}

func TestParseDateLayouts(t *testing.T) {
	for _, s := range []string{"2020-05-01", "2020-05-01T00:00:00Z", "2020-05-01T00:00:00", "2020-05-01 00:00:00"} {
		d, err := parseDate(s)
		assert.NoError(t, err, s)
		assert.Equal(t, time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), d, s)
	}

	_, err := parseDate("01/05/2020")
	assert.Equal(t, ErrInvalidDate, err)
}

func TestTableRenameKeepsOriginal(t *testing.T) {
	table := sampleTable()
	renamed := table.Rename(map[string]string{"count": "total", "missing": "x"})

	assert.Equal(t, []string{"name", "date", "total", "rate"}, renamed.ColumnNames())
	assert.Equal(t, []string{"name", "date", "count", "rate"}, table.ColumnNames())
}

func TestTableValue(t *testing.T) {
	table := sampleTable()

	v, ok := table.Value(0, "count")
	assert.True(t, ok)
	assert.Equal(t, "3", v.String())

	_, ok = table.Value(0, "missing")
	assert.False(t, ok)
	_, ok = table.Value(5, "count")
	assert.False(t, ok)
}

func TestTableWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleTable().WriteCSV(&buf))

	expected := "name,date,count,rate\n" +
		"\"a, b\",2020-05-01,3,0.5\n" +
		"c,,,2\n"
	assert.Equal(t, expected, buf.String())
}

func TestTableMarshalJSON(t *testing.T) {
	b, err := json.Marshal(sampleTable())
	require.NoError(t, err)

	expected := `{
		"columns": ["name", "date", "count", "rate"],
		"rows": [
			{"name": "a, b", "date": "2020-05-01", "count": 3, "rate": 0.5},
			{"name": "c", "date": null, "count": null, "rate": 2}
		]
	}`
	assert.JSONEq(t, expected, string(b))
}

func TestTableMaps(t *testing.T) {
	maps := sampleTable().Maps()
	require.Len(t, maps, 2)

	assert.Equal(t, map[string]interface{}{
		"name":  "a, b",
		"date":  "2020-05-01",
		"count": int64(3),
		"rate":  0.5,
	}, maps[0])
	assert.Nil(t, maps[1]["count"])
}
