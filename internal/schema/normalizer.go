package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Rana718/Roster/internal/store"
	"github.com/fatih/color"
)

// Report records what one normalization pass did per table.
type Report struct {
	Written []string
	Skipped []string
	Failed  map[string]error
}

type Normalizer struct {
	src   *store.Dir
	dst   *store.Dir
	rules []Rule
	quiet bool
}

func NewNormalizer(src, dst *store.Dir, rules []Rule) *Normalizer {
	return &Normalizer{src: src, dst: dst, rules: rules}
}

func (n *Normalizer) Quiet() *Normalizer {
	n.quiet = true
	return n
}

// Run cleans every table that has a rule. Tables absent from the source are
// skipped; a table that fails does not stop the others, and all failures
// come back joined.
func (n *Normalizer) Run(ctx context.Context) (*Report, error) {
	if err := ValidateRules(n.rules); err != nil {
		return nil, err
	}

	report := &Report{Failed: make(map[string]error)}
	var errs []error

	for _, rule := range n.rules {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if !n.src.Exists(rule.Table) {
			report.Skipped = append(report.Skipped, rule.Table)
			n.info(color.Yellow, "  ⚠️  %s.csv not found in %s, skipping", rule.Table, n.src.Path)
			continue
		}

		if err := n.normalize(rule); err != nil {
			report.Failed[rule.Table] = err
			errs = append(errs, err)
			n.info(color.Red, "  ❌ %s: %v", rule.Table, err)
			continue
		}
		report.Written = append(report.Written, rule.Table)
		n.info(color.Green, "  ✅ %s", rule.Table)
	}

	if len(errs) > 0 {
		return report, fmt.Errorf("%d of %d tables failed: %w", len(errs), len(n.rules), errors.Join(errs...))
	}
	return report, nil
}

func (n *Normalizer) normalize(rule Rule) error {
	raw, err := n.src.Read(rule.Table)
	if err != nil {
		return err
	}
	clean, err := Apply(raw, rule)
	if err != nil {
		return err
	}
	return n.dst.Write(clean)
}

// ColumnDiff is the column-level outcome of a rule on a raw header.
type ColumnDiff struct {
	Dropped []string
	Missing []string
}

// Coverage compares the tables present in the source directory with the
// tables the rules cover.
type Coverage struct {
	Present []string
	Missing []string
	Extra   []string
	Columns map[string]ColumnDiff
}

func (n *Normalizer) Coverage() (*Coverage, error) {
	names, err := n.src.List()
	if err != nil {
		return nil, err
	}
	onDisk := make(map[string]bool, len(names))
	for _, name := range names {
		onDisk[name] = true
	}

	cov := &Coverage{Columns: make(map[string]ColumnDiff)}
	ruled := make(map[string]bool, len(n.rules))
	for _, rule := range n.rules {
		ruled[rule.Table] = true
		if onDisk[rule.Table] {
			cov.Present = append(cov.Present, rule.Table)
			header, err := n.src.Header(rule.Table)
			if err != nil {
				return nil, err
			}
			dropped, missing := Diff(header, rule)
			cov.Columns[rule.Table] = ColumnDiff{Dropped: dropped, Missing: missing}
		} else {
			cov.Missing = append(cov.Missing, rule.Table)
		}
	}
	for _, name := range names {
		if !ruled[name] {
			cov.Extra = append(cov.Extra, name)
		}
	}
	sort.Strings(cov.Present)
	sort.Strings(cov.Missing)
	return cov, nil
}

func (n *Normalizer) info(print func(string, ...interface{}), format string, args ...interface{}) {
	if !n.quiet {
		print(format, args...)
	}
}
