package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/bloom/internal/config"
	"github.com/terraincognita07/bloom/internal/logging"
	"go.uber.org/zap"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "bloom",
	Short: "Bloom - daily endometriosis symptom tracker",
	Long: `Bloom serves the symptom tracker API: passwordless sign in, one log per
day, history, pattern insights and data export.

Running bloom without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE:  runMigrate,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print pattern insights for a user",
	RunE:  runStats,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's entries as CSV or JSON",
	Example: `  bloom export --email me@example.com --format csv > bloom.csv
  bloom export --email me@example.com --format json --from 2026-01-01`,
	RunE: runExport,
}

var (
	statsEmail   string
	exportEmail  string
	exportFormat string
	exportFrom   string
	exportTo     string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (or set CONFIG_FILE env)")

	statsCmd.Flags().StringVar(&statsEmail, "email", "", "Account email")
	_ = statsCmd.MarkFlagRequired("email")

	exportCmd.Flags().StringVar(&exportEmail, "email", "", "Account email")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv or json")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "First entry date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Last entry date (YYYY-MM-DD)")
	_ = exportCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(serveCmd, migrateCmd, statsCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadRuntime reads .env, the optional YAML file and the environment, then
// builds the logger.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, nil, err
	}

	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.LogLevel, verbose)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
