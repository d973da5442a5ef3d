package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/Rana718/Roster/internal/seeder"
	"github.com/Rana718/Roster/internal/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	generateStages []string
	generateSeed   int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the school-year tables",
	Long: `
Run the generator pipeline into the raw directory. With --stage only the named
stages run; tables they need from stages that were not selected must already
be present on disk.

Examples:
  roster generate
  roster generate --seed 7
  roster generate --stage attendance --stage fees`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		seedCfg, err := cfg.SeedConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			seedCfg.Seed = generateSeed
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		s := seeder.NewSeeder(store.New(cfg.RawDir), seedCfg)
		if quiet(cmd) {
			s.Quiet()
		}

		reports, err := s.Run(ctx, generateStages...)
		if err != nil {
			return err
		}

		if quiet(cmd) {
			rows := 0
			for _, r := range reports {
				for _, n := range r.Rows {
					rows += n
				}
			}
			color.Green("✅ %d stages, %d rows written to %s", len(reports), rows, cfg.RawDir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringSliceVarP(&generateStages, "stage", "s", nil, "Run only these stages (repeatable)")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Override generation.seed")
}
