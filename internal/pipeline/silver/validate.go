package silver

import (
	"fmt"
	"sort"
	"time"
)

// Findings holds the cross-table integrity results. They are an
// observability signal only: orphaned references never abort the pipeline.
type Findings struct {
	OrphanedCustomersInOrders []int64 `json:"orphaned_customers_in_orders"`
	OrphanedProductsInOrders  []int64 `json:"orphaned_products_in_orders"`
	OrderDateRange            string  `json:"order_date_range"`
}

// validate computes orphaned customer/product references in orders and the
// overall order date range.
func validate(layer *Layer) Findings {
	customerIDs := make(map[int64]bool, len(layer.Customers))
	for _, c := range layer.Customers {
		if c.ID != nil {
			customerIDs[*c.ID] = true
		}
	}
	productIDs := make(map[int64]bool, len(layer.Products))
	for _, p := range layer.Products {
		if p.ID != nil {
			productIDs[*p.ID] = true
		}
	}

	orphanCustomers := make(map[int64]bool)
	orphanProducts := make(map[int64]bool)
	var minDate, maxDate *time.Time
	for _, o := range layer.Orders {
		if o.CustomerID != nil && !customerIDs[*o.CustomerID] {
			orphanCustomers[*o.CustomerID] = true
		}
		if o.ProductID != nil && !productIDs[*o.ProductID] {
			orphanProducts[*o.ProductID] = true
		}
		if o.OrderDate != nil {
			if minDate == nil || o.OrderDate.Before(*minDate) {
				minDate = o.OrderDate
			}
			if maxDate == nil || o.OrderDate.After(*maxDate) {
				maxDate = o.OrderDate
			}
		}
	}

	dateRange := "no valid order dates"
	if minDate != nil {
		dateRange = fmt.Sprintf("%s to %s",
			minDate.Format("2006-01-02"), maxDate.Format("2006-01-02"))
	}

	return Findings{
		OrphanedCustomersInOrders: sortedKeys(orphanCustomers),
		OrphanedProductsInOrders:  sortedKeys(orphanProducts),
		OrderDateRange:            dateRange,
	}
}

func sortedKeys(set map[int64]bool) []int64 {
	keys := make([]int64, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
