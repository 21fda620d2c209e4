package dataset

import (
	"context"

	"github.com/bitmark-inc/autonomy-cases/consts"
	"github.com/bitmark-inc/autonomy-cases/external/fetcher"
)

// upstream column names
const (
	ColumnSpecimenDate    = "Specimen date"
	ColumnAreaType        = "Area type"
	ColumnAreaName        = "Area name"
	ColumnAreaCode        = "Area code"
	ColumnDailyCases      = "Daily lab-confirmed cases"
	ColumnCumulativeCases = "Cumulative lab-confirmed cases"
)

// canonical names given to upstream columns once the table is cleaned
const (
	ColumnDateVal          = "DateVal"
	ColumnEngConfSpecimens = "EngConfSpecimens"
	ColumnCumEngConfSpec   = "CumEngConfSpec"
)

var canonicalNames = map[string]string{
	ColumnSpecimenDate:    ColumnDateVal,
	ColumnDailyCases:      ColumnEngConfSpecimens,
	ColumnCumulativeCases: ColumnCumEngConfSpec,
}

// DefaultDateColumns returns the date columns used when none are configured
func DefaultDateColumns() []string {
	return []string{ColumnSpecimenDate}
}

// CasesDataset holds the NHS England lab-confirmed cases CSV as downloaded and
// derives every table from it on demand. The raw text and configuration never
// change after construction, so a dataset is safe for concurrent readers.
type CasesDataset struct {
	url         string
	raw         string
	dateColumns []string
	filterData  bool
	parse       ParseFunc
}

// New downloads url through f and returns a dataset over the response body.
// An empty url selects consts.CasesURL, empty dateColumns select
// DefaultDateColumns. When filterData is set, rows for the most recent days
// and for areas with 10 or fewer cumulative cases are dropped from every table.
func New(ctx context.Context, f fetcher.Fetcher, url string, dateColumns []string, filterData bool) (*CasesDataset, error) {
	if url == "" {
		url = consts.CasesURL
	}

	raw, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	d := FromText(raw, dateColumns, filterData)
	d.url = url
	return d, nil
}

// NewDefault - dataset of the default source with default date column and cleaning enabled
func NewDefault(ctx context.Context, f fetcher.Fetcher) (*CasesDataset, error) {
	return New(ctx, f, "", nil, true)
}

// FromText builds a dataset over already retrieved text
func FromText(raw string, dateColumns []string, filterData bool) *CasesDataset {
	cols := DefaultDateColumns()
	if len(dateColumns) > 0 {
		cols = make([]string, len(dateColumns))
		copy(cols, dateColumns)
	}

	return &CasesDataset{
		raw:         raw,
		dateColumns: cols,
		filterData:  filterData,
		parse:       ParseCSV,
	}
}

// WithParser returns a copy of the dataset that splits the raw text with p
func (d *CasesDataset) WithParser(p ParseFunc) *CasesDataset {
	c := *d
	c.parse = p
	return &c
}

// URL returns the address the text was downloaded from
func (d *CasesDataset) URL() string {
	return d.url
}

// Raw returns the text exactly as fetched
func (d *CasesDataset) Raw() string {
	return d.raw
}

// DateColumns returns a copy of the columns parsed as dates, sort key first
func (d *CasesDataset) DateColumns() []string {
	out := make([]string, len(d.dateColumns))
	copy(out, d.dateColumns)
	return out
}

// FilterData reports whether views drop recent and low count rows
func (d *CasesDataset) FilterData() bool {
	return d.filterData
}

// Table parses the raw text, sorts it by the date columns, applies the
// cleaning filters when enabled and renames columns to their canonical names.
// Nothing is cached, each call starts again from the raw text.
func (d *CasesDataset) Table() (*Table, error) {
	t, err := parseTable(d.raw, d.parse, d.dateColumns)
	if err != nil {
		return nil, err
	}

	t = sortByDate(t, d.dateColumns)

	if d.filterData {
		t, err = dropRecent(t, d.dateColumns[0], cutoffDate())
		if err != nil {
			return nil, err
		}
		t, err = dropLowCumulative(t, ColumnCumulativeCases, minCumulativeCases)
		if err != nil {
			return nil, err
		}
	}

	return t.Rename(canonicalNames), nil
}

func (d *CasesDataset) byAreaType(areaType string) (*Table, error) {
	t, err := d.Table()
	if err != nil {
		return nil, err
	}
	return filterColumn(t, ColumnAreaType, areaType)
}

func (d *CasesDataset) byArea(areaType, name string) (*Table, error) {
	t, err := d.byAreaType(areaType)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return t, nil
	}
	return filterColumn(t, ColumnAreaName, name)
}

// National returns rows of the Nation area type, only those of the named
// nation when name is not empty
func (d *CasesDataset) National(name string) (*Table, error) {
	return d.byArea(consts.AreaTypeNation, name)
}

// Regional returns rows of the Region area type, only those of the named
// region when name is not empty
func (d *CasesDataset) Regional(name string) (*Table, error) {
	return d.byArea(consts.AreaTypeRegion, name)
}

// UTLA returns rows of upper tier local authorities, only those of the named
// authority when name is not empty
func (d *CasesDataset) UTLA(name string) (*Table, error) {
	return d.byArea(consts.AreaTypeUTLA, name)
}

// View dispatches to National, Regional or UTLA by area type
func (d *CasesDataset) View(areaType, name string) (*Table, error) {
	if !consts.IsAreaType(areaType) {
		return nil, &SchemaError{Column: ColumnAreaType, Err: ErrUnknownAreaType}
	}
	return d.byArea(areaType, name)
}

func filterColumn(t *Table, column, value string) (*Table, error) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil, &SchemaError{Column: column, Err: ErrMissingColumn}
	}
	return t.Filter(func(r Row) bool {
		return !r[idx].IsNull() && r[idx].String() == value
	}), nil
}
