// Package config handles configuration management for medallion.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for medallion.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Run holds configuration for the run subcommand.
	Run RunConfig `mapstructure:"run"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`
}

// RunConfig holds configuration for a pipeline run.
type RunConfig struct {
	// Input is the directory containing customers.csv, products.csv and
	// orders.csv.
	Input string `mapstructure:"input"`

	// Output is the directory the bronze/silver/gold layers are written to.
	Output string `mapstructure:"output"`

	// ReferenceTime pins "now" for recency and days-since-order derivations
	// (RFC3339). Empty means wall clock, so re-running the pipeline later
	// against identical input changes those fields.
	ReferenceTime string `mapstructure:"reference_time"`
}

// GenerateConfig holds configuration for sample data generation.
type GenerateConfig struct {
	// Output is the directory the sample CSV files are written to.
	Output string `mapstructure:"output"`

	// Customers is the number of customer rows to generate.
	Customers int `mapstructure:"customers"`

	// Products is the number of product rows to generate.
	Products int `mapstructure:"products"`

	// Orders is the number of order lines to generate.
	Orders int `mapstructure:"orders"`

	// Seed makes generation reproducible; 0 means a random seed.
	Seed uint64 `mapstructure:"seed"`
}

// LoadConfig holds configuration for the PostgreSQL loader.
type LoadConfig struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// Input is the directory containing the CSV files to load.
	Input string `mapstructure:"input"`

	// DropExisting drops the tables before recreating and loading them.
	DropExisting bool `mapstructure:"drop_existing"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Run: RunConfig{
			Input:  "data",
			Output: "medallion_output",
		},
		Generate: GenerateConfig{
			Output:    "data",
			Customers: 200,
			Products:  60,
			Orders:    1500,
		},
		Load: LoadConfig{
			Input: "data",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./medallion.yaml
// 3. ~/.config/medallion/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("medallion")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "medallion"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// ValidateRun checks configuration required for the run command.
func (c *Config) ValidateRun() error {
	if c.Run.Input == "" {
		return fmt.Errorf("input directory is required")
	}
	if c.Run.Output == "" {
		return fmt.Errorf("output directory is required")
	}
	if c.Run.ReferenceTime != "" {
		if _, err := time.Parse(time.RFC3339, c.Run.ReferenceTime); err != nil {
			return fmt.Errorf("reference_time must be RFC3339: %w", err)
		}
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if c.Generate.Output == "" {
		return fmt.Errorf("output directory is required")
	}
	if c.Generate.Customers < 1 {
		return fmt.Errorf("customers must be at least 1")
	}
	if c.Generate.Products < 1 {
		return fmt.Errorf("products must be at least 1")
	}
	if c.Generate.Orders < 1 {
		return fmt.Errorf("orders must be at least 1")
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if c.Load.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	if c.Load.Input == "" {
		return fmt.Errorf("input directory is required")
	}
	return nil
}
