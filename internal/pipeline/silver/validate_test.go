package silver

import (
	"testing"
	"time"
)

func TestValidateFindsOrphans(t *testing.T) {
	layer := &Layer{
		Customers: []Customer{{ID: intp(1)}, {ID: intp(2)}},
		Products:  []Product{{ID: intp(10)}},
		Orders: []Order{
			{CustomerID: intp(1), ProductID: intp(10)},
			{CustomerID: intp(3), ProductID: intp(10)},
			{CustomerID: intp(2), ProductID: intp(99)},
			{CustomerID: intp(3), ProductID: intp(98)},
			{CustomerID: nil, ProductID: nil},
		},
	}

	f := validate(layer)

	if len(f.OrphanedCustomersInOrders) != 1 || f.OrphanedCustomersInOrders[0] != 3 {
		t.Errorf("OrphanedCustomersInOrders = %v, want [3]", f.OrphanedCustomersInOrders)
	}
	want := []int64{98, 99}
	if len(f.OrphanedProductsInOrders) != 2 {
		t.Fatalf("OrphanedProductsInOrders = %v, want %v", f.OrphanedProductsInOrders, want)
	}
	for i, id := range want {
		if f.OrphanedProductsInOrders[i] != id {
			t.Errorf("OrphanedProductsInOrders[%d] = %d, want %d",
				i, f.OrphanedProductsInOrders[i], id)
		}
	}
}

func TestValidateDateRange(t *testing.T) {
	d1 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	layer := &Layer{
		Orders: []Order{
			{OrderDate: &d2},
			{OrderDate: &d1},
			{OrderDate: nil},
		},
	}

	f := validate(layer)
	if f.OrderDateRange != "2024-01-10 to 2024-06-20" {
		t.Errorf("OrderDateRange = %q", f.OrderDateRange)
	}
}

func TestValidateNoDates(t *testing.T) {
	f := validate(&Layer{Orders: []Order{{OrderDate: nil}}})
	if f.OrderDateRange != "no valid order dates" {
		t.Errorf("OrderDateRange = %q", f.OrderDateRange)
	}
}
