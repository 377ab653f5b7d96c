package gold

import (
	"sort"
	"time"

	"github.com/retailworks/medallion/internal/pipeline/silver"
)

// CustomerRecord is one row of the customer analytics view: the customer
// master attributes plus order-derived metrics. Metrics is nil for
// customers with no orders.
type CustomerRecord struct {
	CustomerID *int64
	FirstName  string
	LastName   string
	Email      string
	Membership string
	AgeGroup   *string

	Metrics *CustomerMetrics

	ProcessedAt time.Time
}

// CustomerMetrics holds the RFM, CLV and segmentation results for one
// customer.
type CustomerMetrics struct {
	OrderCount     int64
	FirstOrderDate time.Time
	LastOrderDate  time.Time

	TotalSpent          float64
	AvgOrderValue       float64
	MedianOrderValue    float64
	TotalItemsPurchased float64
	TotalReturns        int64

	RecencyDays    int64
	RecencyScore   int
	FrequencyScore int
	MonetaryScore  int

	AvgDaysBetweenOrders    float64
	PredictedLifetimeOrders float64
	LifetimeValue           float64

	Segment    string
	ReturnRate float64
}

type customerAgg struct {
	dates    []time.Time
	totals   []float64
	quantity float64
	returns  int64
	lines    int64
}

// buildCustomerAnalytics groups orders per customer, scores RFM on 1-5
// quantiles, estimates CLV and segments every customer, then left-joins the
// result onto the customer master so zero-order customers survive with nil
// metrics.
func buildCustomerAnalytics(s *silver.Layer, now time.Time) []CustomerRecord {
	aggs := make(map[int64]*customerAgg)
	for _, o := range s.Orders {
		if o.CustomerID == nil {
			continue
		}
		agg := aggs[*o.CustomerID]
		if agg == nil {
			agg = &customerAgg{}
			aggs[*o.CustomerID] = agg
		}
		agg.lines++
		if o.OrderDate != nil {
			agg.dates = append(agg.dates, *o.OrderDate)
		}
		if o.Total != nil {
			agg.totals = append(agg.totals, *o.Total)
		}
		if o.Quantity != nil {
			agg.quantity += *o.Quantity
		}
		if o.IsReturned {
			agg.returns++
		}
	}

	// Ascending customer id is the base order for quantile scoring; stable
	// ties in ntile then resolve by id.
	ids := make([]int64, 0, len(aggs))
	for id, agg := range aggs {
		if len(agg.dates) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	metrics := make(map[int64]*CustomerMetrics, len(ids))
	recency := make([]float64, len(ids))
	frequency := make([]float64, len(ids))
	monetary := make([]float64, len(ids))

	for i, id := range ids {
		agg := aggs[id]
		first, last := agg.dates[0], agg.dates[0]
		for _, d := range agg.dates[1:] {
			if d.Before(first) {
				first = d
			}
			if d.After(last) {
				last = d
			}
		}

		m := &CustomerMetrics{
			OrderCount:          int64(len(agg.dates)),
			FirstOrderDate:      first,
			LastOrderDate:       last,
			TotalSpent:          round2(sum(agg.totals)),
			AvgOrderValue:       round2(mean(agg.totals)),
			MedianOrderValue:    round2(median(agg.totals)),
			TotalItemsPurchased: agg.quantity,
			TotalReturns:        agg.returns,
			RecencyDays:         int64(now.Sub(last).Hours() / 24),
		}
		m.ReturnRate = round1(float64(m.TotalReturns) / float64(m.OrderCount) * 100)

		if m.OrderCount > 1 {
			m.AvgDaysBetweenOrders = last.Sub(first).Hours() / 24 / float64(m.OrderCount-1)
		}
		if m.AvgDaysBetweenOrders > 0 {
			m.PredictedLifetimeOrders = max(365/m.AvgDaysBetweenOrders, float64(m.OrderCount))
		} else {
			m.PredictedLifetimeOrders = float64(m.OrderCount)
		}
		m.LifetimeValue = round2(m.PredictedLifetimeOrders * m.AvgOrderValue)

		metrics[id] = m
		recency[i] = float64(m.RecencyDays)
		frequency[i] = float64(m.OrderCount)
		monetary[i] = m.TotalSpent
	}

	// Recency scores in reverse: the most recent customers land in the
	// lowest recency-days bucket and get the highest score.
	recencyBuckets := ntile(recency, 5)
	frequencyScores := ntile(frequency, 5)
	monetaryScores := ntile(monetary, 5)
	for i, id := range ids {
		m := metrics[id]
		m.RecencyScore = 6 - recencyBuckets[i]
		m.FrequencyScore = frequencyScores[i]
		m.MonetaryScore = monetaryScores[i]
		m.Segment = segmentCustomer(m.RecencyScore, m.FrequencyScore, m.MonetaryScore)
	}

	records := make([]CustomerRecord, 0, len(s.Customers))
	for _, c := range s.Customers {
		rec := CustomerRecord{
			CustomerID:  c.ID,
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			Email:       c.Email,
			Membership:  c.Membership,
			AgeGroup:    c.AgeGroup,
			ProcessedAt: now,
		}
		if c.ID != nil {
			rec.Metrics = metrics[*c.ID]
		}
		records = append(records, rec)
	}
	return records
}

// segmentCustomer applies the fixed RFM decision table, top to bottom,
// first match wins.
func segmentCustomer(recency, frequency, monetary int) string {
	switch {
	case recency >= 4 && frequency >= 4 && monetary >= 4:
		return "Champions"
	case recency >= 3 && frequency >= 3:
		return "Loyal Customers"
	case recency >= 4 && frequency <= 2:
		return "New Customers"
	case recency <= 2 && frequency >= 3:
		return "At Risk"
	case recency <= 2 && frequency <= 2:
		return "Lost Customers"
	default:
		return "Potential Loyalists"
	}
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}
