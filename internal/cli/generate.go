package cli

import (
	"github.com/spf13/cobra"

	"github.com/retailworks/medallion/internal/datagen"
)

var (
	generateOutput    string
	generateCustomers int
	generateProducts  int
	generateOrders    int
	generateSeed      uint64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate sample retail CSV input data",
	Long: `Generate customers.csv, products.csv and orders.csv with realistic
retail data the pipeline can run over. A fraction of order totals are
deliberately wrong and some orders are returns so the downstream quality
flags have something to find.

Example:
  medallion generate --output data
  medallion generate --output data --customers 500 --orders 5000 --seed 42`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateOutput, "output", "",
		"directory to write the CSV files to")
	generateCmd.Flags().IntVar(&generateCustomers, "customers", 0,
		"number of customer rows to generate")
	generateCmd.Flags().IntVar(&generateProducts, "products", 0,
		"number of product rows to generate")
	generateCmd.Flags().IntVar(&generateOrders, "orders", 0,
		"number of order lines to generate")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0,
		"random seed for reproducible output (0 = random)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if generateOutput != "" {
		cfg.Generate.Output = generateOutput
	}
	if generateCustomers > 0 {
		cfg.Generate.Customers = generateCustomers
	}
	if generateProducts > 0 {
		cfg.Generate.Products = generateProducts
	}
	if generateOrders > 0 {
		cfg.Generate.Orders = generateOrders
	}
	if generateSeed != 0 {
		cfg.Generate.Seed = generateSeed
	}

	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	return datagen.Generate(datagen.Config{
		OutputDir: cfg.Generate.Output,
		Customers: cfg.Generate.Customers,
		Products:  cfg.Generate.Products,
		Orders:    cfg.Generate.Orders,
		Seed:      cfg.Generate.Seed,
	})
}
