package seeder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rana718/Roster/internal/types"
)

// columns maps header names to positions for one upstream table.
type columns struct {
	table string
	index map[string]int
}

func indexColumns(t *types.Table, required ...string) (*columns, error) {
	c := &columns{table: t.Name, index: make(map[string]int, len(t.Columns))}
	for i, name := range t.Columns {
		c.index[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := c.index[name]; !ok {
			return nil, fmt.Errorf("table %s is missing column %s", t.Name, name)
		}
	}
	return c, nil
}

func (c *columns) has(name string) bool {
	_, ok := c.index[name]
	return ok
}

func (c *columns) str(row []string, name string) string {
	idx, ok := c.index[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (c *columns) atoi(row []string, name string) (int, error) {
	v := c.str(row, name)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("table %s column %s: invalid integer %q", c.table, name, v)
	}
	return n, nil
}

func (c *columns) day(row []string, name string) (time.Time, error) {
	v := c.str(row, name)
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("table %s column %s: invalid date %q", c.table, name, v)
	}
	return t, nil
}

func (c *columns) flag(row []string, name string) bool {
	return strings.EqualFold(c.str(row, name), "true")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

// tableOf builds a table from typed rows.
func tableOf[T any](name string, header []string, items []T, row func(T) []string) *types.Table {
	t := types.NewTable(name, header...)
	t.Rows = make([][]string, 0, len(items))
	for _, item := range items {
		t.Rows = append(t.Rows, row(item))
	}
	return t
}
