package gold

import "sort"

// ntile assigns each value a quantile bucket 1..buckets by ascending value.
// The sort is stable, so ties keep their original relative order, which
// keeps frequency scoring deterministic when many customers share an order
// count.
func ntile(values []float64, buckets int) []int {
	n := len(values)
	scores := make([]int, n)
	if n == 0 {
		return scores
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	for pos, idx := range order {
		scores[idx] = pos*buckets/n + 1
	}
	return scores
}
