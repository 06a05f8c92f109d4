package analytics

import "sort"

const (
	// urgentRunwayDays is the restock alarm: fewer days of stock than this.
	urgentRunwayDays = 7
	// deadStockMinAgeDays is how long a product must have existed before
	// zero sales make it dead stock rather than just new.
	deadStockMinAgeDays = 15
	// segmentLimit caps the urgent-restock and star lists.
	segmentLimit = 5
)

// urgentRestock surfaces the first five A/B products that will run out
// within a week. Order is inherited from the revenue-ranked input; it is
// not re-ranked by urgency.
func urgentRestock(ranked []ProductMetric) []ProductMetric {
	out := []ProductMetric{}
	for _, m := range ranked {
		if m.Stock > 0 && m.RunwayDays < urgentRunwayDays && (m.Grade == GradeA || m.Grade == GradeB) {
			out = append(out, m)
			if len(out) == segmentLimit {
				break
			}
		}
	}
	return out
}

// deadStock lists aged products holding stock that did not sell at all in
// the window, largest stock first. Unlike the other segments this one is
// independently re-sorted.
func deadStock(ranked []ProductMetric) []ProductMetric {
	out := []ProductMetric{}
	for _, m := range ranked {
		if m.Stock > 0 && m.SoldQty == 0 && m.DaysSinceCreation > deadStockMinAgeDays {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Stock > out[j].Stock
	})
	return out
}

// starProducts is the top of the A tier, first five in revenue order.
func starProducts(ranked []ProductMetric) []ProductMetric {
	out := []ProductMetric{}
	for _, m := range ranked {
		if m.Grade == GradeA {
			out = append(out, m)
			if len(out) == segmentLimit {
				break
			}
		}
	}
	return out
}
