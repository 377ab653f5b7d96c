// Package cli implements the command-line interface for medallion.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/retailworks/medallion/internal/config"
	"github.com/retailworks/medallion/internal/logging"
	"github.com/retailworks/medallion/pkg/version"
)

var (
	// Global flags
	cfgFile  string
	logLevel string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "medallion",
		Short: "Batch retail analytics pipeline",
		Long: `medallion is a CLI tool that runs a Bronze-Silver-Gold batch pipeline
over raw retail CSV extracts: raw ingestion with lineage metadata, cleaning
and standardization, and analytics views covering customer segmentation,
product performance, sales trends, cross-sell pairs and daily time series.

It can also generate sample input data and bulk-load the raw CSVs into
PostgreSQL.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./medallion.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(loadCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
