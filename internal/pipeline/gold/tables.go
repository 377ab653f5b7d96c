package gold

import (
	"github.com/retailworks/medallion/internal/table"
)

// Tables returns the gold layer as generic tables for persistence. Nested
// views are flattened with a {view}_{subview} naming convention.
func (l *Layer) Tables() []*table.Table {
	return []*table.Table{
		l.customerAnalyticsTable(),
		l.productAnalyticsTable(),
		l.monthlySalesTable(),
		l.categorySalesTable(),
		l.segmentSalesTable(),
		l.crossSellTable(),
		l.timeSeriesTable(),
	}
}

func (l *Layer) customerAnalyticsTable() *table.Table {
	t := table.New("customer_analytics", []table.Column{
		{Name: "customer_id", Type: table.Int},
		{Name: "first_name", Type: table.String},
		{Name: "last_name", Type: table.String},
		{Name: "email", Type: table.String},
		{Name: "membership", Type: table.String},
		{Name: "age_group", Type: table.String},
		{Name: "order_count", Type: table.Int},
		{Name: "first_order_date", Type: table.Time},
		{Name: "last_order_date", Type: table.Time},
		{Name: "total_spent", Type: table.Float},
		{Name: "avg_order_value", Type: table.Float},
		{Name: "median_order_value", Type: table.Float},
		{Name: "total_items_purchased", Type: table.Float},
		{Name: "total_returns", Type: table.Int},
		{Name: "recency_days", Type: table.Int},
		{Name: "recency_score", Type: table.Int},
		{Name: "frequency_score", Type: table.Int},
		{Name: "monetary_score", Type: table.Int},
		{Name: "avg_days_between_orders", Type: table.Float},
		{Name: "predicted_lifetime_orders", Type: table.Float},
		{Name: "customer_lifetime_value", Type: table.Float},
		{Name: "customer_segment", Type: table.String},
		{Name: "return_rate", Type: table.Float},
		{Name: "gold_processed_timestamp", Type: table.Time},
	})
	for _, r := range l.CustomerAnalytics {
		row := []any{
			intCell(r.CustomerID), r.FirstName, r.LastName, r.Email,
			r.Membership, strCell(r.AgeGroup),
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
			nil, nil, nil, nil, nil,
			r.ProcessedAt,
		}
		if m := r.Metrics; m != nil {
			row[6] = m.OrderCount
			row[7] = m.FirstOrderDate
			row[8] = m.LastOrderDate
			row[9] = m.TotalSpent
			row[10] = m.AvgOrderValue
			row[11] = m.MedianOrderValue
			row[12] = m.TotalItemsPurchased
			row[13] = m.TotalReturns
			row[14] = m.RecencyDays
			row[15] = int64(m.RecencyScore)
			row[16] = int64(m.FrequencyScore)
			row[17] = int64(m.MonetaryScore)
			row[18] = m.AvgDaysBetweenOrders
			row[19] = m.PredictedLifetimeOrders
			row[20] = m.LifetimeValue
			row[21] = m.Segment
			row[22] = m.ReturnRate
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func (l *Layer) productAnalyticsTable() *table.Table {
	t := table.New("product_analytics", []table.Column{
		{Name: "product_id", Type: table.Int},
		{Name: "product_name", Type: table.String},
		{Name: "price", Type: table.Float},
		{Name: "category", Type: table.String},
		{Name: "brand", Type: table.String},
		{Name: "price_tier", Type: table.String},
		{Name: "total_orders", Type: table.Int},
		{Name: "total_quantity_sold", Type: table.Float},
		{Name: "total_revenue", Type: table.Float},
		{Name: "unique_customers", Type: table.Int},
		{Name: "total_returns", Type: table.Int},
		{Name: "first_sale_date", Type: table.Time},
		{Name: "last_sale_date", Type: table.Time},
		{Name: "avg_quantity_per_order", Type: table.Float},
		{Name: "avg_revenue_per_order", Type: table.Float},
		{Name: "return_rate", Type: table.Float},
		{Name: "customer_repeat_rate", Type: table.Float},
		{Name: "days_on_sale", Type: table.Int},
		{Name: "sales_velocity", Type: table.Float},
		{Name: "revenue_rank", Type: table.Int},
		{Name: "quantity_rank", Type: table.Int},
		{Name: "popularity_rank", Type: table.Int},
		{Name: "performance_category", Type: table.String},
		{Name: "gold_processed_timestamp", Type: table.Time},
	})
	for _, r := range l.ProductAnalytics {
		row := []any{
			intCell(r.ProductID), r.ProductName, floatCell(r.Price),
			r.Category, r.Brand, strCell(r.PriceTier),
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
			intCell(r.RevenueRank), intCell(r.QuantityRank),
			intCell(r.PopularityRank), strCell(r.PerformanceCategory),
			r.ProcessedAt,
		}
		if m := r.Metrics; m != nil {
			row[6] = m.TotalOrders
			row[7] = m.TotalQuantitySold
			row[8] = m.TotalRevenue
			row[9] = m.UniqueCustomers
			row[10] = m.TotalReturns
			row[11] = m.FirstSaleDate
			row[12] = m.LastSaleDate
			row[13] = m.AvgQuantityPerOrder
			row[14] = m.AvgRevenuePerOrder
			row[15] = m.ReturnRate
			row[16] = m.CustomerRepeatRate
			row[17] = m.DaysOnSale
			row[18] = m.SalesVelocity
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func (l *Layer) monthlySalesTable() *table.Table {
	t := table.New("sales_analytics_monthly_sales", []table.Column{
		{Name: "order_year", Type: table.Int},
		{Name: "order_month", Type: table.Int},
		{Name: "year_month", Type: table.String},
		{Name: "total_revenue", Type: table.Float},
		{Name: "total_orders", Type: table.Int},
		{Name: "avg_order_value", Type: table.Float},
		{Name: "unique_customers", Type: table.Int},
		{Name: "unique_products", Type: table.Int},
		{Name: "total_items", Type: table.Float},
		{Name: "total_returns", Type: table.Int},
		{Name: "revenue_growth", Type: table.Float},
		{Name: "order_growth", Type: table.Float},
		{Name: "customer_growth", Type: table.Float},
	})
	for _, m := range l.Sales.Monthly {
		t.Rows = append(t.Rows, []any{
			m.Year, m.Month, m.YearMonth, m.TotalRevenue, m.TotalOrders,
			m.AvgOrderValue, m.UniqueCustomers, m.UniqueProducts,
			m.TotalItems, m.TotalReturns, floatCell(m.RevenueGrowth),
			floatCell(m.OrderGrowth), floatCell(m.CustomerGrowth),
		})
	}
	return t
}

func (l *Layer) categorySalesTable() *table.Table {
	t := table.New("sales_analytics_category_performance", []table.Column{
		{Name: "category", Type: table.String},
		{Name: "total_revenue", Type: table.Float},
		{Name: "total_orders", Type: table.Int},
		{Name: "avg_order_value", Type: table.Float},
		{Name: "unique_customers", Type: table.Int},
		{Name: "total_items", Type: table.Float},
		{Name: "revenue_share", Type: table.Float},
	})
	for _, c := range l.Sales.Category {
		t.Rows = append(t.Rows, []any{
			c.Category, c.TotalRevenue, c.TotalOrders, c.AvgOrderValue,
			c.UniqueCustomers, c.TotalItems, c.RevenueShare,
		})
	}
	return t
}

func (l *Layer) segmentSalesTable() *table.Table {
	t := table.New("sales_analytics_customer_segment_performance", []table.Column{
		{Name: "customer_segment", Type: table.String},
		{Name: "total_revenue", Type: table.Float},
		{Name: "total_orders", Type: table.Int},
		{Name: "avg_order_value", Type: table.Float},
		{Name: "unique_customers", Type: table.Int},
	})
	for _, s := range l.Sales.Segment {
		t.Rows = append(t.Rows, []any{
			s.Segment, s.TotalRevenue, s.TotalOrders, s.AvgOrderValue,
			s.UniqueCustomers,
		})
	}
	return t
}

func (l *Layer) crossSellTable() *table.Table {
	t := table.New("cross_sell_analytics", []table.Column{
		{Name: "product_a", Type: table.Int},
		{Name: "product_b", Type: table.Int},
		{Name: "product_name_a", Type: table.String},
		{Name: "category_a", Type: table.String},
		{Name: "product_name_b", Type: table.String},
		{Name: "category_b", Type: table.String},
		{Name: "frequency", Type: table.Int},
		{Name: "product_a_sales", Type: table.Int},
		{Name: "product_b_sales", Type: table.Int},
		{Name: "support", Type: table.Float},
		{Name: "confidence_a_to_b", Type: table.Float},
		{Name: "confidence_b_to_a", Type: table.Float},
	})
	for _, p := range l.CrossSell {
		t.Rows = append(t.Rows, []any{
			p.ProductA, p.ProductB, p.ProductNameA, p.CategoryA,
			p.ProductNameB, p.CategoryB, p.Frequency, p.ProductASales,
			p.ProductBSales, p.Support, p.ConfidenceAToB, p.ConfidenceBToA,
		})
	}
	return t
}

func (l *Layer) timeSeriesTable() *table.Table {
	t := table.New("time_series_analytics", []table.Column{
		{Name: "order_date", Type: table.Time},
		{Name: "daily_revenue", Type: table.Float},
		{Name: "daily_orders", Type: table.Int},
		{Name: "daily_customers", Type: table.Int},
		{Name: "day_of_week", Type: table.String},
		{Name: "day_of_month", Type: table.Int},
		{Name: "month", Type: table.Int},
		{Name: "quarter", Type: table.Int},
		{Name: "is_weekend", Type: table.Bool},
		{Name: "is_month_start", Type: table.Bool},
		{Name: "is_month_end", Type: table.Bool},
		{Name: "revenue_7day_ma", Type: table.Float},
		{Name: "revenue_30day_ma", Type: table.Float},
		{Name: "revenue_day_over_day", Type: table.Float},
		{Name: "orders_day_over_day", Type: table.Float},
	})
	for _, d := range l.TimeSeries {
		t.Rows = append(t.Rows, []any{
			d.Date, d.Revenue, d.Orders, d.Customers, d.DayOfWeek,
			d.DayOfMonth, d.Month, d.Quarter, d.IsWeekend, d.IsMonthStart,
			d.IsMonthEnd, d.Revenue7DayMA, d.Revenue30DayMA,
			floatCell(d.RevenueDayOverDay), floatCell(d.OrdersDayOverDay),
		})
	}
	return t
}

func intCell(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatCell(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func strCell(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
