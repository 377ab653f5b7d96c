package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/retailworks/medallion/internal/db"
)

var (
	loadConnection   string
	loadInput        string
	loadDropExisting bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Bulk-load the raw CSV files into PostgreSQL",
	Long: `Create the customers, products and orders tables and bulk-load the
raw CSV files into them via COPY. Pass --drop-existing to drop and recreate
the tables first.

Example:
  medallion load --connection postgres://postgres@localhost:5432/retail --input data`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadConnection, "connection", "",
		"PostgreSQL connection string")
	loadCmd.Flags().StringVar(&loadInput, "input", "",
		"directory containing the CSV files")
	loadCmd.Flags().BoolVar(&loadDropExisting, "drop-existing", false,
		"drop and recreate the tables before loading")
}

func runLoad(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if loadConnection != "" {
		cfg.Load.Connection = loadConnection
	}
	if loadInput != "" {
		cfg.Load.Input = loadInput
	}
	if loadDropExisting {
		cfg.Load.DropExisting = true
	}

	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Load.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Load.DropExisting {
		if err := db.DropSchema(ctx, pool); err != nil {
			return err
		}
	}
	if err := db.CreateSchema(ctx, pool); err != nil {
		return err
	}

	for _, name := range db.TableNames {
		csvPath := filepath.Join(cfg.Load.Input, name+".csv")
		if _, err := db.LoadTable(ctx, pool, name, csvPath); err != nil {
			return err
		}
	}
	return nil
}
