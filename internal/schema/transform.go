package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rana718/Roster/internal/types"
)

var ErrMissingColumn = errors.New("missing expected column")

const bom = "\uFEFF"

// CleanHeader strips surrounding whitespace and a UTF-8 byte order mark.
func CleanHeader(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), bom))
}

// column is one output column: either a source position in the raw row or,
// for added columns, a constant.
type column struct {
	name  string
	src   int
	value string
}

// resolve replays a rule's renames, drops and adds over a raw header. The
// returned table carries the resulting header so lookups go through it.
func resolve(name string, header []string, rule Rule) ([]column, *types.Table) {
	cols := make([]column, len(header))
	for i, h := range header {
		cols[i] = column{name: CleanHeader(h), src: i}
	}

	find := func(name string) int {
		for i, c := range cols {
			if c.name == name {
				return i
			}
		}
		return -1
	}
	remove := func(i int) {
		cols = append(cols[:i], cols[i+1:]...)
	}

	for _, r := range rule.Rename {
		i := find(r.From)
		if i < 0 {
			continue
		}
		if r.To == "" {
			remove(i)
		} else {
			cols[i].name = r.To
		}
	}

	for _, drop := range rule.Drop {
		if i := find(drop); i >= 0 {
			remove(i)
		}
	}

	for _, a := range rule.Add {
		if find(a.Name) < 0 {
			cols = append(cols, column{name: a.Name, src: -1, value: a.Default})
		}
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return cols, types.NewTable(name, names...)
}

// Apply runs rule against table and returns a new table whose header is
// exactly rule.Expected. Renames and drops naming absent columns are
// ignored; an expected column that is still absent at the end is an error.
func Apply(table *types.Table, rule Rule) (*types.Table, error) {
	cols, resolved := resolve(table.Name, table.Columns, rule)

	selected := make([]column, len(rule.Expected))
	for i, name := range rule.Expected {
		j := resolved.ColumnIndex(name)
		if j < 0 {
			return nil, fmt.Errorf("%w: table %s has no column %s", ErrMissingColumn, rule.Table, name)
		}
		selected[i] = cols[j]
	}

	out := types.NewTable(table.Name, rule.Expected...)
	out.Rows = make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		values := make([]string, len(selected))
		for i, c := range selected {
			switch {
			case c.src < 0:
				values[i] = c.value
			case c.src < len(row):
				values[i] = row[c.src]
			}
		}
		if err := out.Append(values...); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Diff lists the raw columns a rule will discard and the expected columns
// the raw header cannot supply, without transforming any rows.
func Diff(header []string, rule Rule) (dropped, missing []string) {
	_, resolved := resolve(rule.Table, header, rule)
	for _, name := range rule.Expected {
		if !resolved.HasColumn(name) {
			missing = append(missing, name)
		}
	}

	kept := make(map[string]bool)
	for _, name := range rule.Expected {
		kept[name] = true
	}
	renamed := make(map[string]string)
	for _, r := range rule.Rename {
		renamed[r.From] = r.To
	}
	for _, name := range header {
		name = CleanHeader(name)
		target, ok := renamed[name]
		if !ok {
			target = name
		}
		if target == "" || !kept[target] {
			dropped = append(dropped, name)
		}
	}
	return dropped, missing
}
