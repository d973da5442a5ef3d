package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/Rana718/Roster/internal/schema"
	"github.com/Rana718/Roster/internal/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Clean raw tables to the fixed column contract",
	Long: `
Apply the per-table rename/drop/add rules to every raw CSV and write the result,
columns in contract order, to the clean directory. A table missing from the raw
directory is skipped; a table missing an expected column fails without stopping
the others.

Examples:
  roster normalize
  roster normalize --check
  roster normalize --dump-rules > rules.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		rules, err := schema.LoadRules(cfg.RulesFile)
		if err != nil {
			return err
		}

		if dump, _ := cmd.Flags().GetBool("dump-rules"); dump {
			data, err := schema.MarshalRules(rules)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		}

		n := schema.NewNormalizer(store.New(cfg.RawDir), store.New(cfg.CleanDir), rules)
		if quiet(cmd) {
			n.Quiet()
		}

		if check, _ := cmd.Flags().GetBool("check"); check {
			return printCoverage(n)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		color.Cyan("🧹 Normalizing %s → %s", cfg.RawDir, cfg.CleanDir)
		report, err := n.Run(ctx)
		if report != nil {
			fmt.Printf("\n📊 %d written, %d skipped, %d failed\n", len(report.Written), len(report.Skipped), len(report.Failed))
		}
		return err
	},
}

func printCoverage(n *schema.Normalizer) error {
	cov, err := n.Coverage()
	if err != nil {
		return err
	}

	color.Cyan("📋 Rule coverage")
	for _, table := range cov.Present {
		diff := cov.Columns[table]
		switch {
		case len(diff.Missing) > 0:
			color.Red("  ❌ %s missing: %s", table, strings.Join(diff.Missing, ", "))
		case len(diff.Dropped) > 0:
			color.Green("  ✅ %s (drops %s)", table, strings.Join(diff.Dropped, ", "))
		default:
			color.Green("  ✅ %s", table)
		}
	}
	for _, table := range cov.Missing {
		color.Yellow("  ⏳ %s not in raw directory", table)
	}
	for _, table := range cov.Extra {
		color.White("  ➖ %s has no rule", table)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().Bool("dump-rules", false, "Print the active rules as YAML and exit")
	normalizeCmd.Flags().Bool("check", false, "Compare raw headers with the rules without writing")
}
