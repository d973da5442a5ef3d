package cmd

import (
	"fmt"
	"strings"

	"github.com/Rana718/Roster/internal/seeder"
	"github.com/Rana718/Roster/internal/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan [stage...]",
	Short: "Show the stage order and which tables exist",
	Long: `Show the verified run order of the generator stages with their inputs and
outputs, and whether each output table is already present in the raw directory.
Known stages: ` + strings.Join(seeder.StageNames(), ", "),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		s := seeder.NewSeeder(store.New(cfg.RawDir), seeder.SeedConfig{})
		plan, err := s.Plan(args...)
		if err != nil {
			return err
		}

		color.Cyan("📋 Stage plan for %s", cfg.RawDir)
		fmt.Println()
		for i, stage := range plan {
			fmt.Printf("%2d. %s\n", i+1, stage.Name)
			if len(stage.Requires) > 0 {
				fmt.Printf("    needs:    %s\n", strings.Join(stage.Requires, ", "))
			}
			fmt.Printf("    produces: %s\n", strings.Join(stage.Produces, ", "))
			for _, table := range stage.Present {
				color.Green("    ✅ %s", table)
			}
			for _, table := range stage.Missing {
				color.Yellow("    ⏳ %s", table)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
