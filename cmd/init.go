package cmd

import (
	"fmt"
	"os"

	"github.com/Rana718/Roster/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new roster project",
	Long:  `Write roster.config.json with default generation settings, a .env stub and the data directories.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitializeProject(); err != nil {
			return fmt.Errorf("failed to initialize project: %w", err)
		}

		cfg := config.DefaultConfig()
		fmt.Println("✅ Successfully initialized roster project")
		fmt.Println()
		fmt.Println("📁 Directories created:")
		for _, dir := range []string{cfg.RawDir, cfg.CleanDir, cfg.ExportPath} {
			fmt.Printf("   %s/\n", dir)
		}
		fmt.Println()
		fmt.Println("📝 Configuration file created:")
		fmt.Printf("   %s\n", config.FileName)

		if os.Getenv(cfg.Database.URLEnv) != "" {
			fmt.Println()
			fmt.Printf("ℹ️  Using existing %s from environment\n", cfg.Database.URLEnv)
		}

		fmt.Println()
		fmt.Printf("🚀 Next steps:\n")
		fmt.Printf("   roster generate      # Build every table into %s\n", cfg.RawDir)
		fmt.Printf("   roster normalize     # Clean %s into %s\n", cfg.RawDir, cfg.CleanDir)
		fmt.Printf("   roster export --xlsx # Write a workbook to %s\n", cfg.ExportPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
