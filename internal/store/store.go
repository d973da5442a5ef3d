package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Rana718/Roster/internal/types"
)

var ErrTableNotFound = errors.New("table not found")

const tableExt = ".csv"

// Dir keeps one CSV file per table inside a directory.
type Dir struct {
	Path string
}

func New(path string) *Dir {
	return &Dir{Path: path}
}

func (d *Dir) TablePath(name string) string {
	return filepath.Join(d.Path, name+tableExt)
}

func (d *Dir) Exists(name string) bool {
	info, err := os.Stat(d.TablePath(name))
	return err == nil && !info.IsDir()
}

func (d *Dir) Read(name string) (*types.Table, error) {
	file, err := os.Open(d.TablePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s in %s", ErrTableNotFound, name, d.Path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer file.Close()

	return ReadCSV(name, file)
}

// Header reads only the header row of a table.
func (d *Dir) Header(name string) ([]string, error) {
	file, err := os.Open(d.TablePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s in %s", ErrTableNotFound, name, d.Path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer file.Close()

	header, err := csv.NewReader(file).Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", name, err)
	}
	return header, nil
}

// ReadCSV parses a header row followed by data rows.
func ReadCSV(name string, r io.Reader) (*types.Table, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table %s has no header row", name)
	}

	return &types.Table{
		Name:    name,
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}

func (d *Dir) Write(table *types.Table) error {
	if err := os.MkdirAll(d.Path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", d.Path, err)
	}

	file, err := os.Create(d.TablePath(table.Name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", table.Name, err)
	}

	if err := WriteCSV(file, table); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func WriteCSV(w io.Writer, table *types.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", table.Name, err)
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("failed to write rows of %s: %w", table.Name, err)
	}
	return nil
}

// List returns the table names present in the directory, sorted.
func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", d.Path, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), tableExt) {
			names = append(names, strings.TrimSuffix(entry.Name(), tableExt))
		}
	}
	sort.Strings(names)
	return names, nil
}
