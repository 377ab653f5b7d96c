// Package gold implements the business analytics layer: five independent
// views computed from the silver tables. Every view is a pure function of
// its inputs; the silver layer is never mutated.
package gold

import (
	"math"
	"sort"
	"time"

	"github.com/retailworks/medallion/internal/logging"
	"github.com/retailworks/medallion/internal/pipeline/silver"
)

// Layer holds the analytics views of one run.
type Layer struct {
	CustomerAnalytics []CustomerRecord
	ProductAnalytics  []ProductRecord
	Sales             SalesView
	CrossSell         []ProductPair
	TimeSeries        []DailySales

	ProcessedAt time.Time
}

// Transform builds all five analytics views. now pins the reference point
// for recency calculations.
func Transform(s *silver.Layer, now time.Time) *Layer {
	layer := &Layer{
		CustomerAnalytics: buildCustomerAnalytics(s, now),
		ProductAnalytics:  buildProductAnalytics(s, now),
		Sales:             buildSalesAnalytics(s),
		CrossSell:         buildCrossSellAnalytics(s),
		TimeSeries:        buildTimeSeriesAnalytics(s),
		ProcessedAt:       now,
	}

	logging.Info().
		Int("customer_rows", len(layer.CustomerAnalytics)).
		Int("product_rows", len(layer.ProductAnalytics)).
		Int("monthly_rows", len(layer.Sales.Monthly)).
		Int("cross_sell_pairs", len(layer.CrossSell)).
		Int("daily_rows", len(layer.TimeSeries)).
		Msg("Gold analytics tables created")

	return layer
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// pctChange returns the percentage change from prev to cur, or nil when
// there is no previous value to compare against.
func pctChange(cur, prev float64, hasPrev bool) *float64 {
	if !hasPrev || prev == 0 {
		return nil
	}
	v := (cur - prev) / prev * 100
	return &v
}
