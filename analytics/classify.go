package analytics

import "sort"

// Pareto boundaries for the ABC classification: products inside the first
// 80% of cumulative revenue are A, inside 95% are B, the tail is C.
const (
	abcThresholdA = 0.80
	abcThresholdB = 0.95
)

// assignGrades returns a new slice ordered by revenue descending with the
// ABC grade filled in. The sort is stable, so revenue ties keep the product
// input order. A grade is relative to the whole set: it changes whenever
// the product list or the window changes.
//
// totalRevenue is the sale-level total, not the sum of per-product revenue;
// when it is zero every share is defined as 0 and everything grades A.
func assignGrades(metrics []ProductMetric, totalRevenue float64) []ProductMetric {
	ranked := make([]ProductMetric, len(metrics))
	copy(ranked, metrics)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue > ranked[j].Revenue
	})

	var cumulative float64
	for i := range ranked {
		cumulative += ranked[i].Revenue
		share := 0.0
		if totalRevenue > 0 {
			share = cumulative / totalRevenue
		}
		switch {
		case share <= abcThresholdA:
			ranked[i].Grade = GradeA
		case share <= abcThresholdB:
			ranked[i].Grade = GradeB
		default:
			ranked[i].Grade = GradeC
		}
	}
	return ranked
}
