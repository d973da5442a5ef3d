package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.3.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════╗",
		"║   ██████╗  ██████╗ ███████╗████████╗███████╗██████╗  ║",
		"║   ██╔══██╗██╔═══██╗██╔════╝╚══██╔══╝██╔════╝██╔══██╗ ║",
		"║   ██████╔╝██║   ██║███████╗   ██║   █████╗  ██████╔╝ ║",
		"║   ██╔══██╗██║   ██║╚════██║   ██║   ██╔══╝  ██╔══██╗ ║",
		"║   ██║  ██║╚██████╔╝███████║   ██║   ███████╗██║  ██║ ║",
		"║   ╚═╝  ╚═╝ ╚═════╝ ╚══════╝   ╚═╝   ╚══════╝╚═╝  ╚═╝ ║",
		"║                                                      ║",
		"║        📚 Synthetic school-year data, one CSV each   ║",
		"╚══════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                    ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Generate and normalize synthetic school roster data",
	Long: `
Roster builds a reproducible school year of students, teachers, classes,
enrollments, grades, attendance, discipline, fees, test scores and guardians
as one CSV per table, then normalizes raw exports to a fixed column contract.

Typical flow:
  roster init
  roster generate
  roster normalize
  roster export --sqlite`,
	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("Roster CLI version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./roster.config.json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only print errors and the final summary")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("roster.config")
	}

	viper.SetEnvPrefix("ROSTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			color.Yellow("⚠️  Could not read %s: %v", cfgFile, err)
		}
	}
}
