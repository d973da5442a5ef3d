package common

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Rana718/Roster/internal/types"
)

// maxParams keeps multi-row inserts under SQLite's default bound-variable
// limit; MySQL and Postgres allow far more.
const maxParams = 900

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateTable rejects table or column names that are not plain
// identifiers, so quoted names never need escaping.
func ValidateTable(table *types.Table) error {
	if !identifierRegex.MatchString(table.Name) {
		return fmt.Errorf("invalid table name %q", table.Name)
	}
	if len(table.Columns) == 0 {
		return fmt.Errorf("table %s has no columns", table.Name)
	}
	for _, col := range table.Columns {
		if !identifierRegex.MatchString(col) {
			return fmt.Errorf("table %s: invalid column name %q", table.Name, col)
		}
	}
	return nil
}

func QuoteAll(names []string, quote func(string) string) []string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = quote(name)
	}
	return quoted
}

// TextColumnDefs renders "col TEXT, ..." for a create statement.
func TextColumnDefs(columns []string, quote func(string) string) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = quote(col) + " TEXT"
	}
	return strings.Join(defs, ", ")
}

// Batches splits rows so one insert binds at most maxParams values.
func Batches(rows [][]string, columns int) [][][]string {
	size := maxParams / columns
	if size < 1 {
		size = 1
	}
	var batches [][][]string
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		batches = append(batches, rows[start:end])
	}
	return batches
}

func Args(row []string) []interface{} {
	args := make([]interface{}, len(row))
	for i, v := range row {
		args[i] = v
	}
	return args
}

// ScanTable reads every row of a text result set into a table.
func ScanTable(name string, columns []string, next func() bool, scan func(...interface{}) error) (*types.Table, error) {
	table := types.NewTable(name, columns...)
	for next() {
		values := make([]*string, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", name, err)
		}
		row := make([]string, len(columns))
		for i, v := range values {
			if v != nil {
				row[i] = *v
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
