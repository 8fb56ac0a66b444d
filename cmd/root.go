package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Rana718/uatgen/internal/config"
	"github.com/Rana718/uatgen/internal/logging"
)

var (
	cfgFile string
	verbose bool
	Version = "1.0.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"██╗   ██╗ █████╗ ████████╗ ██████╗ ███████╗███╗   ██╗",
		"██║   ██║██╔══██╗╚══██╔══╝██╔════╝ ██╔════╝████╗  ██║",
		"██║   ██║███████║   ██║   ██║  ███╗█████╗  ██╔██╗ ██║",
		"██║   ██║██╔══██║   ██║   ██║   ██║██╔══╝  ██║╚██╗██║",
		"╚██████╔╝██║  ██║   ██║   ╚██████╔╝███████╗██║ ╚████║",
		" ╚═════╝ ╚═╝  ╚═╝   ╚═╝    ╚═════╝ ╚══════╝╚═╝  ╚═══╝",
		"        🧪 Dirty UAT data for pipeline testing 🧪",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                  ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "uatgen",
	Short: "Generate an intentionally imperfect UAT dataset",
	Long: `
uatgen drops and recreates four related tables (Categories, Suppliers,
Customers, Products) and fills them with seeded fake data that carries a
fixed rate of data-quality defects: NULL names, malformed e-mails, future
dates, negative prices and stock, and orphaned supplier references.

Running without a subcommand runs "generate".

Database Support:
- SQL Server (default, SQL_SERVER_HOST / SQL_SERVER_DB)
- PostgreSQL
- MySQL
- SQLite`,

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			showBanner()
			return nil
		}
		return runGenerate(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./uatgen.config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Log debug diagnostics to stderr")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
	addGenerateFlags(rootCmd)

	RegisterBaseCommands()
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("uatgen.config")
	}

	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// loadConfig reads and validates configuration before anything touches the
// database, then builds the run logger.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
