package gold

import (
	"sort"
	"time"

	"github.com/retailworks/medallion/internal/pipeline/silver"
)

// DailySales is one day of the time-series view, with trailing moving
// averages and day-over-day growth. Growth fields are nil on the first day
// and when the previous day was zero.
type DailySales struct {
	Date time.Time

	Revenue   float64
	Orders    int64
	Customers int64

	DayOfWeek    string
	DayOfMonth   int64
	Month        int64
	Quarter      int64
	IsWeekend    bool
	IsMonthStart bool
	IsMonthEnd   bool

	Revenue7DayMA  float64
	Revenue30DayMA float64

	RevenueDayOverDay *float64
	OrdersDayOverDay  *float64
}

type dailyAgg struct {
	revenue   float64
	orders    int64
	customers map[int64]bool
}

// buildTimeSeriesAnalytics rolls orders up per day. The moving-average
// window shrinks at the start of the series instead of producing missing
// values.
func buildTimeSeriesAnalytics(s *silver.Layer) []DailySales {
	aggs := make(map[time.Time]*dailyAgg)
	for _, o := range s.Orders {
		if o.OrderDate == nil {
			continue
		}
		d := o.OrderDate.Truncate(24 * time.Hour)
		agg := aggs[d]
		if agg == nil {
			agg = &dailyAgg{customers: make(map[int64]bool)}
			aggs[d] = agg
		}
		if o.Total != nil {
			agg.revenue += *o.Total
		}
		if o.ID != nil {
			agg.orders++
		}
		if o.CustomerID != nil {
			agg.customers[*o.CustomerID] = true
		}
	}

	dates := make([]time.Time, 0, len(aggs))
	for d := range aggs {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	days := make([]DailySales, 0, len(dates))
	for i, d := range dates {
		agg := aggs[d]
		day := DailySales{
			Date:         d,
			Revenue:      round2(agg.revenue),
			Orders:       agg.orders,
			Customers:    int64(len(agg.customers)),
			DayOfWeek:    d.Weekday().String(),
			DayOfMonth:   int64(d.Day()),
			Month:        int64(d.Month()),
			Quarter:      int64(d.Month()-1)/3 + 1,
			IsWeekend:    d.Weekday() == time.Saturday || d.Weekday() == time.Sunday,
			IsMonthStart: d.Day() <= 7,
			IsMonthEnd:   d.Day() >= 25,
		}
		if i > 0 {
			prev := days[i-1]
			day.RevenueDayOverDay = pctChange(day.Revenue, prev.Revenue, true)
			day.OrdersDayOverDay = pctChange(float64(day.Orders), float64(prev.Orders), true)
		}
		days = append(days, day)
	}

	for i := range days {
		days[i].Revenue7DayMA = trailingMean(days, i, 7)
		days[i].Revenue30DayMA = trailingMean(days, i, 30)
	}
	return days
}

// trailingMean averages revenue over the last window rows ending at i,
// using however many rows exist.
func trailingMean(days []DailySales, i, window int) float64 {
	start := i - window + 1
	if start < 0 {
		start = 0
	}
	var sum float64
	for j := start; j <= i; j++ {
		sum += days[j].Revenue
	}
	return round2(sum / float64(i-start+1))
}
