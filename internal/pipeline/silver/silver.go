// Package silver implements the cleaning and standardization layer. Each
// entity is transformed independently; field-level coercion failures become
// nil values, never errors. Cross-table referential checks are diagnostic
// only and never fail the run.
package silver

import (
	"time"

	"github.com/retailworks/medallion/internal/logging"
	"github.com/retailworks/medallion/internal/pipeline/bronze"
)

// Layer holds the cleaned tables and the integrity findings of one run.
type Layer struct {
	Customers []Customer
	Products  []Product
	Orders    []Order

	Findings Findings

	ProcessedAt time.Time
}

// Transform cleans every bronze table and runs the cross-table validation.
// now pins the reference point for all time-relative derived fields.
func Transform(b *bronze.Layer, now time.Time) *Layer {
	layer := &Layer{
		Customers:   cleanCustomers(b.Customers, now),
		Products:    cleanProducts(b.Products, now),
		Orders:      cleanOrders(b.Orders, now),
		ProcessedAt: now,
	}
	layer.Findings = validate(layer)

	logging.Info().
		Int("customers", len(layer.Customers)).
		Int("products", len(layer.Products)).
		Int("orders", len(layer.Orders)).
		Int("orphaned_customer_refs", len(layer.Findings.OrphanedCustomersInOrders)).
		Int("orphaned_product_refs", len(layer.Findings.OrphanedProductsInOrders)).
		Msg("Silver transformations complete")

	return layer
}
