package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v2"

	"github.com/bitmark-inc/autonomy-cases/dataset"
)

const (
	formatTable   = "table"
	formatCSV     = "csv"
	formatJSON    = "json"
	formatYAML    = "yaml"
	formatRecords = "records"
)

var formats = []string{formatTable, formatCSV, formatJSON, formatYAML, formatRecords}

func render(w io.Writer, t *dataset.Table, format string, now time.Time) error {
	switch format {
	case formatTable:
		return renderTable(w, t)
	case formatCSV:
		return t.WriteCSV(w)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	case formatYAML:
		b, err := yaml.Marshal(t.Maps())
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case formatRecords:
		records, err := dataset.ToRecords(t, now)
		if err != nil {
			return err
		}
		return gocsv.Marshal(records, w)
	}
	return fmt.Errorf("unknown format %q, expect one of %v", format, formats)
}

func renderTable(w io.Writer, t *dataset.Table) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)

	header := table.Row{}
	for _, name := range t.ColumnNames() {
		header = append(header, name)
	}
	tw.AppendHeader(header)

	for _, record := range t.Records()[1:] {
		row := make(table.Row, len(record))
		for i, cell := range record {
			row[i] = cell
		}
		tw.AppendRow(row)
	}
	tw.AppendFooter(table.Row{fmt.Sprintf("%d rows", t.Len())})

	tw.SetStyle(table.StyleRounded)
	tw.Render()
	return nil
}
