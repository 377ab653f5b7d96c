package gold

import (
	"testing"
	"time"

	"github.com/retailworks/medallion/internal/pipeline/silver"
)

func dailyOrder(day int, total float64, orderID, customerID int64) silver.Order {
	return silver.Order{
		ID:         intp(orderID),
		CustomerID: intp(customerID),
		OrderDate:  date(2024, 3, day),
		Total:      floatp(total),
	}
}

func TestBuildTimeSeriesAnalytics(t *testing.T) {
	layer := &silver.Layer{
		Orders: []silver.Order{
			dailyOrder(1, 100, 1, 1),
			dailyOrder(1, 100, 2, 2),
			dailyOrder(2, 300, 3, 1),
			dailyOrder(4, 100, 4, 3),
			// No parsable date, dropped from the series
			{ID: intp(5), Total: floatp(999)},
		},
	}

	days := buildTimeSeriesAnalytics(layer)
	if len(days) != 3 {
		t.Fatalf("Days = %d, want 3", len(days))
	}

	d1 := days[0]
	if !d1.Date.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", d1.Date)
	}
	if d1.Revenue != 200 {
		t.Errorf("Day 1 Revenue = %v, want 200", d1.Revenue)
	}
	if d1.Orders != 2 {
		t.Errorf("Day 1 Orders = %d, want 2", d1.Orders)
	}
	if d1.Customers != 2 {
		t.Errorf("Day 1 Customers = %d, want 2", d1.Customers)
	}
	if d1.DayOfWeek != "Friday" {
		t.Errorf("Day 1 DayOfWeek = %q, want Friday", d1.DayOfWeek)
	}
	if !d1.IsMonthStart {
		t.Error("Day 1 IsMonthStart should be true")
	}
	if d1.RevenueDayOverDay != nil {
		t.Errorf("Day 1 RevenueDayOverDay = %v, want nil", *d1.RevenueDayOverDay)
	}

	d2 := days[1]
	if d2.RevenueDayOverDay == nil || *d2.RevenueDayOverDay != 50 {
		t.Errorf("Day 2 RevenueDayOverDay = %v, want 50", d2.RevenueDayOverDay)
	}
	if d2.OrdersDayOverDay == nil || *d2.OrdersDayOverDay != -50 {
		t.Errorf("Day 2 OrdersDayOverDay = %v, want -50", d2.OrdersDayOverDay)
	}

	// Weekend flags: 2024-03-02 is a Saturday
	if !d2.IsWeekend {
		t.Error("Day 2 IsWeekend should be true")
	}
}

func TestTrailingMeanShrinkingWindow(t *testing.T) {
	layer := &silver.Layer{
		Orders: []silver.Order{
			dailyOrder(1, 100, 1, 1),
			dailyOrder(2, 200, 2, 1),
			dailyOrder(3, 600, 3, 1),
		},
	}

	days := buildTimeSeriesAnalytics(layer)

	// The 7-day window shrinks to however many days exist
	wants := []float64{100, 150, 300}
	for i, want := range wants {
		if days[i].Revenue7DayMA != want {
			t.Errorf("Day %d Revenue7DayMA = %v, want %v", i+1, days[i].Revenue7DayMA, want)
		}
		if days[i].Revenue30DayMA != want {
			t.Errorf("Day %d Revenue30DayMA = %v, want %v", i+1, days[i].Revenue30DayMA, want)
		}
	}
}

func TestTrailingMeanFullWindow(t *testing.T) {
	orders := make([]silver.Order, 0, 10)
	for day := 1; day <= 10; day++ {
		orders = append(orders, dailyOrder(day, float64(day*10), int64(day), 1))
	}
	days := buildTimeSeriesAnalytics(&silver.Layer{Orders: orders})

	// Day 10: mean of days 4..10 revenue (40..100) = 70
	if got := days[9].Revenue7DayMA; got != 70 {
		t.Errorf("Day 10 Revenue7DayMA = %v, want 70", got)
	}
	// 30-day window still covers the whole series
	if got := days[9].Revenue30DayMA; got != 55 {
		t.Errorf("Day 10 Revenue30DayMA = %v, want 55", got)
	}
}
