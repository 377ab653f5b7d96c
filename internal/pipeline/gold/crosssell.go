package gold

import (
	"sort"

	"github.com/retailworks/medallion/internal/pipeline/silver"
)

// Only the most frequent pairs are reported.
const maxCrossSellPairs = 20

// ProductPair is one co-occurring product pair with its market-basket
// metrics.
type ProductPair struct {
	ProductA int64
	ProductB int64

	ProductNameA string
	CategoryA    string
	ProductNameB string
	CategoryB    string

	Frequency     int64
	ProductASales int64
	ProductBSales int64

	Support         float64
	ConfidenceAToB  float64
	ConfidenceBToA  float64
}

// buildCrossSellAnalytics mines product pairs from multi-item baskets. A
// basket is the set of distinct products one customer bought on one order
// date. No multi-item baskets means an empty result, not an error.
func buildCrossSellAnalytics(s *silver.Layer) []ProductPair {
	type basketKey struct {
		customerID int64
		date       int64
	}

	baskets := make(map[basketKey]map[int64]bool)
	productSales := make(map[int64]int64)
	for _, o := range s.Orders {
		if o.ProductID != nil {
			productSales[*o.ProductID]++
		}
		if o.CustomerID == nil || o.OrderDate == nil || o.ProductID == nil {
			continue
		}
		key := basketKey{*o.CustomerID, o.OrderDate.Unix()}
		if baskets[key] == nil {
			baskets[key] = make(map[int64]bool)
		}
		baskets[key][*o.ProductID] = true
	}

	type pairKey struct{ a, b int64 }

	pairCounts := make(map[pairKey]int64)
	var multiBaskets int64
	for _, products := range baskets {
		if len(products) < 2 {
			continue
		}
		multiBaskets++

		ids := make([]int64, 0, len(products))
		for id := range products {
			ids = append(ids, id)
		}
		// Canonical order: pairs are always (low id, high id).
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				pairCounts[pairKey{ids[i], ids[j]}]++
			}
		}
	}

	if multiBaskets == 0 {
		return nil
	}

	productInfo := make(map[int64]silver.Product, len(s.Products))
	for _, p := range s.Products {
		if p.ID != nil {
			if _, seen := productInfo[*p.ID]; !seen {
				productInfo[*p.ID] = p
			}
		}
	}

	pairs := make([]ProductPair, 0, len(pairCounts))
	for key, freq := range pairCounts {
		pair := ProductPair{
			ProductA:      key.a,
			ProductB:      key.b,
			Frequency:     freq,
			ProductASales: productSales[key.a],
			ProductBSales: productSales[key.b],
			Support:       float64(freq) / float64(multiBaskets),
		}
		if info, ok := productInfo[key.a]; ok {
			pair.ProductNameA = info.ProductName
			pair.CategoryA = info.Category
		}
		if info, ok := productInfo[key.b]; ok {
			pair.ProductNameB = info.ProductName
			pair.CategoryB = info.Category
		}
		if pair.ProductASales > 0 {
			pair.ConfidenceAToB = float64(freq) / float64(pair.ProductASales)
		}
		if pair.ProductBSales > 0 {
			pair.ConfidenceBToA = float64(freq) / float64(pair.ProductBSales)
		}
		pairs = append(pairs, pair)
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Frequency != pairs[j].Frequency {
			return pairs[i].Frequency > pairs[j].Frequency
		}
		if pairs[i].ProductA != pairs[j].ProductA {
			return pairs[i].ProductA < pairs[j].ProductA
		}
		return pairs[i].ProductB < pairs[j].ProductB
	})

	if len(pairs) > maxCrossSellPairs {
		pairs = pairs[:maxCrossSellPairs]
	}
	return pairs
}
