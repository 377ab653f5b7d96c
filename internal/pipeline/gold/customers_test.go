package gold

import (
	"testing"
	"time"

	"github.com/retailworks/medallion/internal/pipeline/silver"
)

func intp(v int64) *int64       { return &v }
func floatp(v float64) *float64 { return &v }
func timep(v time.Time) *time.Time {
	return &v
}

func goldNow() time.Time {
	return time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
}

func date(y int, m time.Month, d int) *time.Time {
	return timep(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestSegmentCustomer(t *testing.T) {
	tests := []struct {
		r, f, m int
		want    string
	}{
		{5, 5, 5, "Champions"},
		{4, 4, 4, "Champions"},
		{4, 4, 3, "Loyal Customers"},
		{3, 3, 2, "Loyal Customers"},
		{5, 1, 1, "New Customers"},
		{4, 2, 5, "New Customers"},
		{1, 4, 2, "At Risk"},
		{2, 3, 5, "At Risk"},
		{1, 1, 1, "Lost Customers"},
		{2, 2, 5, "Lost Customers"},
		{3, 2, 3, "Potential Loyalists"},
		{5, 3, 1, "Potential Loyalists"},
	}
	for _, tt := range tests {
		if got := segmentCustomer(tt.r, tt.f, tt.m); got != tt.want {
			t.Errorf("segmentCustomer(%d, %d, %d) = %q, want %q",
				tt.r, tt.f, tt.m, got, tt.want)
		}
	}
}

func TestNtile(t *testing.T) {
	values := []float64{50, 10, 40, 20, 30}
	got := ntile(values, 5)
	want := []int{5, 1, 4, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ntile[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestNtileStableTies(t *testing.T) {
	// All equal values keep input order, so buckets ascend by position.
	values := []float64{7, 7, 7, 7, 7}
	got := ntile(values, 5)
	for i, want := range []int{1, 2, 3, 4, 5} {
		if got[i] != want {
			t.Errorf("ntile[%d] = %d, want %d", i, got[i], want)
		}
	}
}

func TestNtileEmpty(t *testing.T) {
	if got := ntile(nil, 5); len(got) != 0 {
		t.Errorf("ntile(nil) = %v, want empty", got)
	}
}

func singleOrderCustomerLayer() *silver.Layer {
	return &silver.Layer{
		Customers: []silver.Customer{
			{ID: intp(1), FirstName: "Ada", Membership: "GOLD"},
			{ID: intp(2), FirstName: "Ben"},
		},
		Orders: []silver.Order{
			{
				CustomerID: intp(1),
				OrderDate:  date(2024, 6, 1),
				Total:      floatp(100),
				Quantity:   floatp(2),
			},
			{
				CustomerID: intp(1),
				OrderDate:  date(2024, 6, 11),
				Total:      floatp(50),
				Quantity:   floatp(1),
				IsReturned: true,
			},
		},
	}
}

func TestBuildCustomerAnalytics(t *testing.T) {
	records := buildCustomerAnalytics(singleOrderCustomerLayer(), goldNow())
	if len(records) != 2 {
		t.Fatalf("Records = %d, want 2", len(records))
	}

	m := records[0].Metrics
	if m == nil {
		t.Fatal("Customer 1 should have metrics")
	}
	if m.OrderCount != 2 {
		t.Errorf("OrderCount = %d, want 2", m.OrderCount)
	}
	if m.TotalSpent != 150 {
		t.Errorf("TotalSpent = %v, want 150", m.TotalSpent)
	}
	if m.AvgOrderValue != 75 {
		t.Errorf("AvgOrderValue = %v, want 75", m.AvgOrderValue)
	}
	if m.MedianOrderValue != 75 {
		t.Errorf("MedianOrderValue = %v, want 75", m.MedianOrderValue)
	}
	if m.TotalItemsPurchased != 3 {
		t.Errorf("TotalItemsPurchased = %v, want 3", m.TotalItemsPurchased)
	}
	if m.TotalReturns != 1 {
		t.Errorf("TotalReturns = %d, want 1", m.TotalReturns)
	}
	if m.ReturnRate != 50 {
		t.Errorf("ReturnRate = %v, want 50", m.ReturnRate)
	}
	// Last order 2024-06-11, reference 2024-07-01
	if m.RecencyDays != 20 {
		t.Errorf("RecencyDays = %d, want 20", m.RecencyDays)
	}

	// 10 days between the two orders
	if m.AvgDaysBetweenOrders != 10 {
		t.Errorf("AvgDaysBetweenOrders = %v, want 10", m.AvgDaysBetweenOrders)
	}
	// 365/10 = 36.5 predicted orders at a 75 AOV
	if m.PredictedLifetimeOrders != 36.5 {
		t.Errorf("PredictedLifetimeOrders = %v, want 36.5", m.PredictedLifetimeOrders)
	}
	if m.LifetimeValue != 2737.5 {
		t.Errorf("LifetimeValue = %v, want 2737.5", m.LifetimeValue)
	}

	// Zero-order customers survive the join with nil metrics
	if records[1].Metrics != nil {
		t.Error("Customer 2 should have nil metrics")
	}
}

func TestBuildCustomerAnalyticsSingleOrderCLV(t *testing.T) {
	layer := &silver.Layer{
		Customers: []silver.Customer{{ID: intp(1)}},
		Orders: []silver.Order{
			{CustomerID: intp(1), OrderDate: date(2024, 6, 1), Total: floatp(80)},
		},
	}

	m := buildCustomerAnalytics(layer, goldNow())[0].Metrics
	if m.AvgDaysBetweenOrders != 0 {
		t.Errorf("AvgDaysBetweenOrders = %v, want 0", m.AvgDaysBetweenOrders)
	}
	// No gap means predicted orders fall back to the observed count
	if m.PredictedLifetimeOrders != 1 {
		t.Errorf("PredictedLifetimeOrders = %v, want 1", m.PredictedLifetimeOrders)
	}
	if m.LifetimeValue != 80 {
		t.Errorf("LifetimeValue = %v, want 80", m.LifetimeValue)
	}
}

func TestBuildCustomerAnalyticsRFMScores(t *testing.T) {
	// Five customers with strictly increasing frequency, monetary and
	// recency so every quantile bucket is hit exactly once.
	layer := &silver.Layer{}
	for id := int64(1); id <= 5; id++ {
		layer.Customers = append(layer.Customers, silver.Customer{ID: intp(id)})
		for o := int64(0); o < id; o++ {
			layer.Orders = append(layer.Orders, silver.Order{
				CustomerID: intp(id),
				OrderDate:  date(2024, time.Month(id), 1+int(o)),
				Total:      floatp(float64(id) * 10),
			})
		}
	}

	records := buildCustomerAnalytics(layer, goldNow())
	for i, record := range records {
		m := record.Metrics
		want := i + 1
		if m.FrequencyScore != want {
			t.Errorf("Customer %d FrequencyScore = %d, want %d", i+1, m.FrequencyScore, want)
		}
		if m.MonetaryScore != want {
			t.Errorf("Customer %d MonetaryScore = %d, want %d", i+1, m.MonetaryScore, want)
		}
		// Later order months mean lower recency days, so higher score
		if m.RecencyScore != want {
			t.Errorf("Customer %d RecencyScore = %d, want %d", i+1, m.RecencyScore, want)
		}
	}

	if got := records[4].Metrics.Segment; got != "Champions" {
		t.Errorf("Top customer segment = %q, want Champions", got)
	}
	if got := records[0].Metrics.Segment; got != "Lost Customers" {
		t.Errorf("Bottom customer segment = %q, want Lost Customers", got)
	}
}
