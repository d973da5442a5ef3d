package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Rana718/Roster/internal/database"
	"github.com/Rana718/Roster/internal/store"
	"github.com/Rana718/Roster/internal/types"
	"github.com/xuri/excelize/v2"
)

const (
	FormatSQLite   = "sqlite"
	FormatPostgres = "postgres"
	FormatMySQL    = "mysql"
	FormatXLSX     = "xlsx"
	FormatJSON     = "json"

	// excel caps sheet names at 31 characters
	maxSheetName = 31
)

// LoadTables reads every table of a directory, in name order.
func LoadTables(dir *store.Dir) ([]*types.Table, error) {
	names, err := dir.List()
	if err != nil {
		return nil, err
	}

	type tableResult struct {
		index int
		table *types.Table
		err   error
	}

	results := make(chan tableResult, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			table, err := dir.Read(name)
			results <- tableResult{i, table, err}
		}(i, name)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	tables := make([]*types.Table, len(names))
	var firstErr error
	for result := range results {
		if result.err != nil && firstErr == nil {
			firstErr = result.err
		}
		tables[result.index] = result.table
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return tables, nil
}

// PerformExport replaces each table in the connected database and returns
// the row count written per table.
func PerformExport(ctx context.Context, adapter database.DatabaseAdapter, tables []*types.Table) (map[string]int, error) {
	counts := make(map[string]int, len(tables))
	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return counts, err
		}
		if err := adapter.ReplaceTable(ctx, table); err != nil {
			return counts, fmt.Errorf("failed to export %s: %w", table.Name, err)
		}
		counts[table.Name] = table.Len()
	}
	return counts, nil
}

// ExportToSQLite writes the tables into a new timestamped database file.
func ExportToSQLite(ctx context.Context, tables []*types.Table, exportPath string) (string, error) {
	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	filePath := filepath.Join(exportPath, fmt.Sprintf("export_%s.db", timestamp()))

	adapter, err := database.NewAdapter(FormatSQLite)
	if err != nil {
		return "", err
	}
	if err := adapter.Connect(ctx, filePath); err != nil {
		return "", err
	}
	defer adapter.Close()

	if _, err := PerformExport(ctx, adapter, tables); err != nil {
		return "", err
	}
	return filePath, nil
}

func ExportToJSON(tables []*types.Table, exportPath, source string) (string, error) {
	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	data := types.ExportData{
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		Version:   "1.0",
		Source:    source,
		Tables:    make(map[string][]map[string]string, len(tables)),
		Comment:   "Roster export",
	}
	for _, table := range tables {
		data.Tables[table.Name] = table.Records()
	}

	filePath := filepath.Join(exportPath, fmt.Sprintf("export_%s.json", timestamp()))

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data: %w", err)
	}

	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filePath, nil
}

// ExportToXLSX writes one sheet per table, header in the first row.
func ExportToXLSX(tables []*types.Table, exportPath string) (string, error) {
	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sorted := append([]*types.Table(nil), tables...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, table := range sorted {
		if err := writeSheet(f, table); err != nil {
			return "", err
		}
	}
	if len(sorted) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return "", err
		}
		if idx, err := f.GetSheetIndex(SheetName(sorted[0].Name)); err == nil {
			f.SetActiveSheet(idx)
		}
	}

	filePath := filepath.Join(exportPath, fmt.Sprintf("export_%s.xlsx", timestamp()))
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("failed to write workbook: %w", err)
	}
	return filePath, nil
}

func SheetName(table string) string {
	if len(table) > maxSheetName {
		return table[:maxSheetName]
	}
	return table
}

func writeSheet(f *excelize.File, table *types.Table) error {
	sheet := SheetName(table.Name)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", sheet, err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to open sheet %s: %w", sheet, err)
	}

	write := func(rowNum int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		return sw.SetRow(cell, row)
	}

	if err := write(1, table.Columns); err != nil {
		return fmt.Errorf("sheet %s: %w", sheet, err)
	}
	for i, values := range table.Rows {
		if err := write(i+2, values); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}
	return sw.Flush()
}

func timestamp() string {
	return time.Now().Format("2006-01-02_15-04-05")
}
