package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/Rana718/Roster/internal/config"
	"github.com/Rana718/Roster/internal/database"
	"github.com/Rana718/Roster/internal/export"
	"github.com/Rana718/Roster/internal/store"
	"github.com/Rana718/Roster/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Load the tables into a database or a file",
	Long: `
Load every table of the clean directory (or the raw one with --raw) into a
target. Columns are stored as text and existing tables are replaced.
Postgres and MySQL read their URL from the variable named by database.url_env.

Examples:
  roster export            # target chosen by database.provider
  roster export --sqlite
  roster export --postgres
  roster export --xlsx --raw
  roster export --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		format := providerFormat(cfg.Database.Provider)
		flagCount := 0
		for _, f := range []string{export.FormatSQLite, export.FormatPostgres, export.FormatMySQL, export.FormatXLSX, export.FormatJSON} {
			if set, _ := cmd.Flags().GetBool(f); set {
				format = f
				flagCount++
			}
		}
		if flagCount > 1 {
			return fmt.Errorf("please specify only one target (--sqlite, --postgres, --mysql, --xlsx or --json)")
		}

		source := cfg.CleanDir
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			source = cfg.RawDir
		}

		tables, err := export.LoadTables(store.New(source))
		if err != nil {
			return err
		}
		if len(tables) == 0 {
			fmt.Printf("No export created (%s has no tables)\n", source)
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var exportPath string
		switch format {
		case export.FormatXLSX:
			exportPath, err = export.ExportToXLSX(tables, cfg.ExportPath)
		case export.FormatJSON:
			exportPath, err = export.ExportToJSON(tables, cfg.ExportPath, source)
		case export.FormatSQLite:
			exportPath, err = export.ExportToSQLite(ctx, tables, cfg.ExportPath)
		default:
			exportPath, err = exportToServer(ctx, cfg, format, tables)
		}
		if err != nil {
			return err
		}

		color.Green("✅ Exported %d tables from %s: %s", len(tables), source, exportPath)
		return nil
	},
}

// providerFormat maps database.provider onto the default export target.
func providerFormat(provider string) string {
	switch provider {
	case "postgresql", "postgres":
		return export.FormatPostgres
	case "mysql":
		return export.FormatMySQL
	default:
		return export.FormatSQLite
	}
}

func exportToServer(ctx context.Context, cfg *config.Config, format string, tables []*types.Table) (string, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return "", err
	}

	adapter, err := database.NewAdapter(format)
	if err != nil {
		return "", err
	}
	if err := adapter.Connect(ctx, dbURL); err != nil {
		return "", fmt.Errorf("failed to connect to database: %w", err)
	}
	defer adapter.Close()

	if err := adapter.Ping(ctx); err != nil {
		return "", fmt.Errorf("failed to connect to database: %w", err)
	}

	counts, err := export.PerformExport(ctx, adapter, tables)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  📦 %s: %d rows\n", name, counts[name])
	}
	return format, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().Bool(export.FormatSQLite, false, "Export to a SQLite file")
	exportCmd.Flags().Bool(export.FormatPostgres, false, "Export to PostgreSQL")
	exportCmd.Flags().Bool(export.FormatMySQL, false, "Export to MySQL")
	exportCmd.Flags().Bool(export.FormatXLSX, false, "Export to an Excel workbook")
	exportCmd.Flags().Bool(export.FormatJSON, false, "Export to a JSON document")
	exportCmd.Flags().Bool("raw", false, "Export the raw directory instead of the clean one")
}
