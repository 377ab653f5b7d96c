package silver

import (
	"math"
	"time"

	"github.com/retailworks/medallion/internal/pipeline/bronze"
)

// Stated and recomputed totals are considered equal below this difference.
const totalTolerance = 0.01

var monthSeasons = map[time.Month]string{
	time.December: "Winter", time.January: "Winter", time.February: "Winter",
	time.March: "Spring", time.April: "Spring", time.May: "Spring",
	time.June: "Summer", time.July: "Summer", time.August: "Summer",
	time.September: "Fall", time.October: "Fall", time.November: "Fall",
}

// Order is a cleaned and standardized order line.
type Order struct {
	ID         *int64
	CustomerID *int64
	ProductID  *int64

	CustomerFirstName string
	CustomerLastName  string
	CustomerGender    string
	CustomerAge       *int64

	OrderDate   *time.Time
	ProductName string
	Category    string
	Brand       string

	Quantity        *float64
	UnitPrice       *float64
	Total           *float64
	CalculatedTotal *float64
	TotalMatches    bool

	OrderYear       *int64
	OrderMonth      *int64
	OrderQuarter    *int64
	OrderDayOfWeek  *string
	OrderDayOfMonth *int64
	IsWeekend       bool
	IsMonthEnd      bool
	Season          *string

	CustomerAgeGroup *string
	CustomerSegment  string

	OrderSize *string

	IsReturned bool

	DaysSinceOrder *int64
	IsRecentOrder  bool

	ProcessedAt      time.Time
	DataQualityScore float64
}

// cleanOrders standardizes the raw order records. now pins the reference
// point for days-since-order and recency flags.
func cleanOrders(records []bronze.Record, now time.Time) []Order {
	orders := make([]Order, 0, len(records))
	for _, rec := range records {
		o := Order{
			ID:                parseInt(rec.Get("id")),
			CustomerID:        parseInt(rec.Get("customer_id")),
			ProductID:         parseInt(rec.Get("product_id")),
			CustomerFirstName: rec.Get("customer_first_name"),
			CustomerLastName:  rec.Get("customer_last_name"),
			CustomerGender:    rec.Get("customer_gender"),
			CustomerAge:       parseInt(rec.Get("customer_age")),
			OrderDate:         parseDate(rec.Get("order_date")),
			ProductName:       rec.Get("product_name"),
			Category:          rec.Get("category"),
			Brand:             rec.Get("brand"),
			Quantity:          parseFloat(rec.Get("quantity")),
			UnitPrice:         parseFloat(rec.Get("unit_price")),
			Total:             parseFloat(rec.Get("total")),
			IsReturned:        parseBool(rec.Get("return_status")),
			ProcessedAt:       now,
		}

		if o.Quantity != nil && o.UnitPrice != nil {
			o.CalculatedTotal = floatp(round2(*o.Quantity * *o.UnitPrice))
		}
		o.TotalMatches = o.Total != nil && o.CalculatedTotal != nil &&
			math.Abs(*o.Total-*o.CalculatedTotal) < totalTolerance

		if d := o.OrderDate; d != nil {
			o.OrderYear = intp(int64(d.Year()))
			o.OrderMonth = intp(int64(d.Month()))
			o.OrderQuarter = intp(int64(d.Month()-1)/3 + 1)
			o.OrderDayOfWeek = strp(d.Weekday().String())
			o.OrderDayOfMonth = intp(int64(d.Day()))
			o.IsWeekend = d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
			o.IsMonthEnd = d.Day() >= 25
			o.Season = strp(monthSeasons[d.Month()])

			days := daysBetween(now, *d)
			o.DaysSinceOrder = &days
			o.IsRecentOrder = days <= 30
		}

		o.CustomerAgeGroup = ageGroup(o.CustomerAge)
		if o.CustomerGender != "" {
			group := "Unknown"
			if o.CustomerAgeGroup != nil {
				group = *o.CustomerAgeGroup
			}
			o.CustomerSegment = o.CustomerGender + "_" + group
		}

		o.OrderSize = orderSize(o.Total)

		fields := 0
		if o.CustomerID != nil {
			fields++
		}
		if o.ProductID != nil {
			fields++
		}
		if o.OrderDate != nil {
			fields++
		}
		if o.Total != nil {
			fields++
		}
		o.DataQualityScore = round1(float64(fields) / 4 * 100)

		orders = append(orders, o)
	}
	return orders
}

// orderSize buckets the stated total at 50/150/500.
func orderSize(total *float64) *string {
	if total == nil {
		return nil
	}
	var size string
	switch t := *total; {
	case t <= 0:
		return nil
	case t <= 50:
		size = "Small"
	case t <= 150:
		size = "Medium"
	case t <= 500:
		size = "Large"
	default:
		size = "XLarge"
	}
	return &size
}
