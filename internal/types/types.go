package types

import (
	"fmt"
)

// Table is one relation held fully in memory: a header plus string cells.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

func NewTable(name string, columns ...string) *Table {
	return &Table{
		Name:    name,
		Columns: columns,
	}
}

// Append adds one row. The value count must match the header.
func (t *Table) Append(values ...string) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("table %s: row has %d values, header has %d columns", t.Name, len(values), len(t.Columns))
	}
	t.Rows = append(t.Rows, values)
	return nil
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a column or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Records converts rows into column->value maps.
func (t *Table) Records() []map[string]string {
	records := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			record[col] = row[i]
		}
		records = append(records, record)
	}
	return records
}

type ExportData struct {
	Timestamp string                         `json:"timestamp"`
	Version   string                         `json:"version"`
	Source    string                         `json:"source"`
	Tables    map[string][]map[string]string `json:"tables"`
	Comment   string                         `json:"comment"`
}

type StageStatus struct {
	Name     string   `json:"name"`
	Requires []string `json:"requires"`
	Produces []string `json:"produces"`
	Present  []string `json:"present"`
	Missing  []string `json:"missing"`
}
