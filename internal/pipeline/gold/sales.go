package gold

import (
	"fmt"
	"sort"

	"github.com/retailworks/medallion/internal/pipeline/silver"
)

// SalesView holds the three sales rollups.
type SalesView struct {
	Monthly  []MonthlySales
	Category []CategorySales
	Segment  []SegmentSales
}

// MonthlySales is one calendar month of sales, with period-over-period
// growth. Growth fields are nil for the first month and when the previous
// period was zero.
type MonthlySales struct {
	Year      int64
	Month     int64
	YearMonth string

	TotalRevenue    float64
	TotalOrders     int64
	AvgOrderValue   float64
	UniqueCustomers int64
	UniqueProducts  int64
	TotalItems      float64
	TotalReturns    int64

	RevenueGrowth  *float64
	OrderGrowth    *float64
	CustomerGrowth *float64
}

// CategorySales is one product category's rollup, with its share of total
// revenue.
type CategorySales struct {
	Category        string
	TotalRevenue    float64
	TotalOrders     int64
	AvgOrderValue   float64
	UniqueCustomers int64
	TotalItems      float64
	RevenueShare    float64
}

// SegmentSales is one customer segment's rollup.
type SegmentSales struct {
	Segment         string
	TotalRevenue    float64
	TotalOrders     int64
	AvgOrderValue   float64
	UniqueCustomers int64
}

type salesAgg struct {
	totals    []float64
	customers map[int64]bool
	products  map[int64]bool
	items     float64
	returns   int64
}

func newSalesAgg() *salesAgg {
	return &salesAgg{customers: make(map[int64]bool), products: make(map[int64]bool)}
}

func (a *salesAgg) add(o silver.Order) {
	if o.Total != nil {
		a.totals = append(a.totals, *o.Total)
	}
	if o.CustomerID != nil {
		a.customers[*o.CustomerID] = true
	}
	if o.ProductID != nil {
		a.products[*o.ProductID] = true
	}
	if o.Quantity != nil {
		a.items += *o.Quantity
	}
	if o.IsReturned {
		a.returns++
	}
}

// buildSalesAnalytics computes the monthly, category and customer-segment
// rollups.
func buildSalesAnalytics(s *silver.Layer) SalesView {
	return SalesView{
		Monthly:  buildMonthlySales(s.Orders),
		Category: buildCategorySales(s.Orders),
		Segment:  buildSegmentSales(s.Orders),
	}
}

func buildMonthlySales(orders []silver.Order) []MonthlySales {
	type yearMonth struct{ year, month int64 }

	aggs := make(map[yearMonth]*salesAgg)
	for _, o := range orders {
		if o.OrderYear == nil || o.OrderMonth == nil {
			continue
		}
		key := yearMonth{*o.OrderYear, *o.OrderMonth}
		agg := aggs[key]
		if agg == nil {
			agg = newSalesAgg()
			aggs[key] = agg
		}
		agg.add(o)
	}

	keys := make([]yearMonth, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	// Chronological order before computing growth.
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	months := make([]MonthlySales, 0, len(keys))
	for i, k := range keys {
		agg := aggs[k]
		m := MonthlySales{
			Year:            k.year,
			Month:           k.month,
			YearMonth:       fmt.Sprintf("%d-%02d", k.year, k.month),
			TotalRevenue:    round2(sum(agg.totals)),
			TotalOrders:     int64(len(agg.totals)),
			AvgOrderValue:   round2(mean(agg.totals)),
			UniqueCustomers: int64(len(agg.customers)),
			UniqueProducts:  int64(len(agg.products)),
			TotalItems:      agg.items,
			TotalReturns:    agg.returns,
		}
		if i > 0 {
			prev := months[i-1]
			m.RevenueGrowth = pctChange(m.TotalRevenue, prev.TotalRevenue, true)
			m.OrderGrowth = pctChange(float64(m.TotalOrders), float64(prev.TotalOrders), true)
			m.CustomerGrowth = pctChange(float64(m.UniqueCustomers), float64(prev.UniqueCustomers), true)
		}
		months = append(months, m)
	}
	return months
}

func buildCategorySales(orders []silver.Order) []CategorySales {
	aggs := make(map[string]*salesAgg)
	for _, o := range orders {
		if o.Category == "" {
			continue
		}
		agg := aggs[o.Category]
		if agg == nil {
			agg = newSalesAgg()
			aggs[o.Category] = agg
		}
		agg.add(o)
	}

	names := make([]string, 0, len(aggs))
	for name := range aggs {
		names = append(names, name)
	}
	sort.Strings(names)

	var grandTotal float64
	for _, agg := range aggs {
		grandTotal += sum(agg.totals)
	}

	categories := make([]CategorySales, 0, len(names))
	for _, name := range names {
		agg := aggs[name]
		c := CategorySales{
			Category:        name,
			TotalRevenue:    round2(sum(agg.totals)),
			TotalOrders:     int64(len(agg.totals)),
			AvgOrderValue:   round2(mean(agg.totals)),
			UniqueCustomers: int64(len(agg.customers)),
			TotalItems:      agg.items,
		}
		if grandTotal > 0 {
			c.RevenueShare = round1(sum(agg.totals) / grandTotal * 100)
		}
		categories = append(categories, c)
	}
	return categories
}

func buildSegmentSales(orders []silver.Order) []SegmentSales {
	aggs := make(map[string]*salesAgg)
	for _, o := range orders {
		if o.CustomerSegment == "" {
			continue
		}
		agg := aggs[o.CustomerSegment]
		if agg == nil {
			agg = newSalesAgg()
			aggs[o.CustomerSegment] = agg
		}
		agg.add(o)
	}

	names := make([]string, 0, len(aggs))
	for name := range aggs {
		names = append(names, name)
	}
	sort.Strings(names)

	segments := make([]SegmentSales, 0, len(names))
	for _, name := range names {
		agg := aggs[name]
		segments = append(segments, SegmentSales{
			Segment:         name,
			TotalRevenue:    round2(sum(agg.totals)),
			TotalOrders:     int64(len(agg.totals)),
			AvgOrderValue:   round2(mean(agg.totals)),
			UniqueCustomers: int64(len(agg.customers)),
		})
	}
	return segments
}
