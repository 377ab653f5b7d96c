package gold

import (
	"sort"
	"time"

	"github.com/retailworks/medallion/internal/pipeline/silver"
)

// ProductRecord is one row of the product analytics view. Metrics and ranks
// are nil for products that were never ordered.
type ProductRecord struct {
	ProductID   *int64
	ProductName string
	Price       *float64
	Category    string
	Brand       string
	PriceTier   *string

	Metrics *ProductMetrics

	RevenueRank    *int64
	QuantityRank   *int64
	PopularityRank *int64

	PerformanceCategory *string

	ProcessedAt time.Time
}

// ProductMetrics holds the order-derived performance numbers for one
// product.
type ProductMetrics struct {
	TotalOrders       int64
	TotalQuantitySold float64
	TotalRevenue      float64
	UniqueCustomers   int64
	TotalReturns      int64
	FirstSaleDate     time.Time
	LastSaleDate      time.Time

	AvgQuantityPerOrder float64
	AvgRevenuePerOrder  float64
	ReturnRate          float64
	CustomerRepeatRate  float64

	DaysOnSale    int64
	SalesVelocity float64
}

type productAgg struct {
	lines     int64
	quantity  float64
	revenue   float64
	customers map[int64]bool
	returns   int64
	dates     []time.Time
}

// buildProductAnalytics computes per-product performance metrics, dense
// ranks by revenue/quantity/order count, and maps the revenue rank to a
// performance tier.
func buildProductAnalytics(s *silver.Layer, now time.Time) []ProductRecord {
	aggs := make(map[int64]*productAgg)
	for _, o := range s.Orders {
		if o.ProductID == nil {
			continue
		}
		agg := aggs[*o.ProductID]
		if agg == nil {
			agg = &productAgg{customers: make(map[int64]bool)}
			aggs[*o.ProductID] = agg
		}
		agg.lines++
		if o.Quantity != nil {
			agg.quantity += *o.Quantity
		}
		if o.Total != nil {
			agg.revenue += *o.Total
		}
		if o.CustomerID != nil {
			agg.customers[*o.CustomerID] = true
		}
		if o.IsReturned {
			agg.returns++
		}
		if o.OrderDate != nil {
			agg.dates = append(agg.dates, *o.OrderDate)
		}
	}

	metrics := make(map[int64]*ProductMetrics, len(aggs))
	for id, agg := range aggs {
		if len(agg.dates) == 0 {
			continue
		}
		first, last := agg.dates[0], agg.dates[0]
		for _, d := range agg.dates[1:] {
			if d.Before(first) {
				first = d
			}
			if d.After(last) {
				last = d
			}
		}

		m := &ProductMetrics{
			TotalOrders:       agg.lines,
			TotalQuantitySold: agg.quantity,
			TotalRevenue:      round2(agg.revenue),
			UniqueCustomers:   int64(len(agg.customers)),
			TotalReturns:      agg.returns,
			FirstSaleDate:     first,
			LastSaleDate:      last,
		}
		m.AvgQuantityPerOrder = round2(m.TotalQuantitySold / float64(m.TotalOrders))
		m.AvgRevenuePerOrder = round2(m.TotalRevenue / float64(m.TotalOrders))
		m.ReturnRate = round1(float64(m.TotalReturns) / float64(m.TotalOrders) * 100)
		if m.UniqueCustomers > 0 {
			m.CustomerRepeatRate = round1(float64(m.TotalOrders-m.UniqueCustomers) /
				float64(m.UniqueCustomers) * 100)
		}
		m.DaysOnSale = int64(last.Sub(first).Hours()/24) + 1
		m.SalesVelocity = round3(float64(m.TotalOrders) / float64(m.DaysOnSale))

		metrics[id] = m
	}

	revenueRanks := denseRanks(metrics, func(m *ProductMetrics) float64 { return m.TotalRevenue })
	quantityRanks := denseRanks(metrics, func(m *ProductMetrics) float64 { return m.TotalQuantitySold })
	popularityRanks := denseRanks(metrics, func(m *ProductMetrics) float64 { return float64(m.TotalOrders) })

	records := make([]ProductRecord, 0, len(s.Products))
	for _, p := range s.Products {
		rec := ProductRecord{
			ProductID:   p.ID,
			ProductName: p.ProductName,
			Price:       p.Price,
			Category:    p.Category,
			Brand:       p.Brand,
			PriceTier:   p.PriceTier,
			ProcessedAt: now,
		}
		if p.ID != nil {
			if m := metrics[*p.ID]; m != nil {
				rec.Metrics = m
				rec.RevenueRank = rankOf(revenueRanks, *p.ID)
				rec.QuantityRank = rankOf(quantityRanks, *p.ID)
				rec.PopularityRank = rankOf(popularityRanks, *p.ID)
				rec.PerformanceCategory = performanceCategory(*rec.RevenueRank)
			}
		}
		records = append(records, rec)
	}
	return records
}

// denseRanks ranks products descending by the given metric. Ties share a
// rank and the next distinct value gets rank+1, no gaps.
func denseRanks(metrics map[int64]*ProductMetrics, value func(*ProductMetrics) float64) map[int64]int64 {
	values := make([]float64, 0, len(metrics))
	for _, m := range metrics {
		values = append(values, value(m))
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))

	rankByValue := make(map[float64]int64, len(values))
	var rank int64
	for _, v := range values {
		if _, seen := rankByValue[v]; !seen {
			rank++
			rankByValue[v] = rank
		}
	}

	ranks := make(map[int64]int64, len(metrics))
	for id, m := range metrics {
		ranks[id] = rankByValue[value(m)]
	}
	return ranks
}

func rankOf(ranks map[int64]int64, id int64) *int64 {
	if r, ok := ranks[id]; ok {
		return &r
	}
	return nil
}

// performanceCategory maps a revenue rank to a tier at cut points 5/10/15.
func performanceCategory(revenueRank int64) *string {
	var cat string
	switch {
	case revenueRank <= 5:
		cat = "Top Performer"
	case revenueRank <= 10:
		cat = "Good Performer"
	case revenueRank <= 15:
		cat = "Average Performer"
	default:
		cat = "Poor Performer"
	}
	return &cat
}
