package gold

import (
	"testing"

	"github.com/retailworks/medallion/internal/pipeline/silver"
)

func TestBuildProductAnalytics(t *testing.T) {
	layer := &silver.Layer{
		Products: []silver.Product{
			{ID: intp(1), ProductName: "Tent", Price: floatp(300), Category: "Tents"},
			{ID: intp(2), ProductName: "Stove", Price: floatp(80), Category: "Camping Stoves"},
			{ID: intp(3), ProductName: "Unsold", Price: floatp(50), Category: "Backpacks"},
		},
		Orders: []silver.Order{
			{ProductID: intp(1), CustomerID: intp(10), OrderDate: date(2024, 1, 1),
				Quantity: floatp(1), Total: floatp(300)},
			{ProductID: intp(1), CustomerID: intp(10), OrderDate: date(2024, 1, 11),
				Quantity: floatp(1), Total: floatp(300), IsReturned: true},
			{ProductID: intp(2), CustomerID: intp(11), OrderDate: date(2024, 1, 5),
				Quantity: floatp(2), Total: floatp(160)},
		},
	}

	records := buildProductAnalytics(layer, goldNow())
	if len(records) != 3 {
		t.Fatalf("Records = %d, want 3", len(records))
	}

	tent := records[0]
	m := tent.Metrics
	if m == nil {
		t.Fatal("Tent should have metrics")
	}
	if m.TotalOrders != 2 {
		t.Errorf("TotalOrders = %d, want 2", m.TotalOrders)
	}
	if m.TotalRevenue != 600 {
		t.Errorf("TotalRevenue = %v, want 600", m.TotalRevenue)
	}
	if m.UniqueCustomers != 1 {
		t.Errorf("UniqueCustomers = %d, want 1", m.UniqueCustomers)
	}
	if m.ReturnRate != 50 {
		t.Errorf("ReturnRate = %v, want 50", m.ReturnRate)
	}
	// 2 orders from 1 customer: (2-1)/1 * 100
	if m.CustomerRepeatRate != 100 {
		t.Errorf("CustomerRepeatRate = %v, want 100", m.CustomerRepeatRate)
	}
	// Jan 1 to Jan 11 inclusive
	if m.DaysOnSale != 11 {
		t.Errorf("DaysOnSale = %d, want 11", m.DaysOnSale)
	}
	if m.SalesVelocity != 0.182 {
		t.Errorf("SalesVelocity = %v, want 0.182", m.SalesVelocity)
	}

	if tent.RevenueRank == nil || *tent.RevenueRank != 1 {
		t.Errorf("Tent RevenueRank = %v, want 1", tent.RevenueRank)
	}
	if tent.PerformanceCategory == nil || *tent.PerformanceCategory != "Top Performer" {
		t.Errorf("Tent PerformanceCategory = %v", tent.PerformanceCategory)
	}

	stove := records[1]
	if stove.RevenueRank == nil || *stove.RevenueRank != 2 {
		t.Errorf("Stove RevenueRank = %v, want 2", stove.RevenueRank)
	}
	// Stove sold more units than the tent
	if stove.QuantityRank == nil || *stove.QuantityRank != 1 {
		t.Errorf("Stove QuantityRank = %v, want 1", stove.QuantityRank)
	}

	unsold := records[2]
	if unsold.Metrics != nil {
		t.Error("Unsold product should have nil metrics")
	}
	if unsold.RevenueRank != nil {
		t.Error("Unsold product should have nil ranks")
	}
}

func TestDenseRanksTies(t *testing.T) {
	metrics := map[int64]*ProductMetrics{
		1: {TotalRevenue: 500},
		2: {TotalRevenue: 500},
		3: {TotalRevenue: 300},
		4: {TotalRevenue: 100},
	}

	ranks := denseRanks(metrics, func(m *ProductMetrics) float64 { return m.TotalRevenue })

	// Tied values share a rank; the next distinct value gets rank+1
	if ranks[1] != 1 || ranks[2] != 1 {
		t.Errorf("Tied ranks = %d, %d, want 1, 1", ranks[1], ranks[2])
	}
	if ranks[3] != 2 {
		t.Errorf("ranks[3] = %d, want 2", ranks[3])
	}
	if ranks[4] != 3 {
		t.Errorf("ranks[4] = %d, want 3", ranks[4])
	}
}

func TestPerformanceCategory(t *testing.T) {
	tests := []struct {
		rank int64
		want string
	}{
		{1, "Top Performer"},
		{5, "Top Performer"},
		{6, "Good Performer"},
		{10, "Good Performer"},
		{11, "Average Performer"},
		{15, "Average Performer"},
		{16, "Poor Performer"},
	}
	for _, tt := range tests {
		got := performanceCategory(tt.rank)
		if got == nil || *got != tt.want {
			t.Errorf("performanceCategory(%d) = %v, want %s", tt.rank, got, tt.want)
		}
	}
}
