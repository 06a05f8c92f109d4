// Package analytics derives the inventory-intelligence report from raw
// sale and product records: ABC (Pareto) revenue classification, stock
// runway, urgent-restock and dead-stock segments, a daily revenue series
// and a naive monthly projection.
//
// The engine is pure and synchronous. It does no I/O, does not mutate its
// inputs, and keeps no state between runs; fetching the records and
// rendering the result belong to the callers. Dirty input degrades to
// zeros and window exclusions rather than errors.
package analytics

// Report is the immutable output of one engine run, shaped for the KPI
// cards, the segment lists and the revenue chart.
type Report struct {
	TotalRevenue       float64         `json:"totalRevenue"`
	ProjectedMonth     float64         `json:"projectedMonth"`
	ActiveProductCount int             `json:"activeProductCount"`
	UrgentRestock      []ProductMetric `json:"urgentRestock"`
	DeadStock          []ProductMetric `json:"deadStock"`
	StarProducts       []ProductMetric `json:"starProducts"`
	ChartLabels        []string        `json:"chartLabels"`
	ChartValues        []float64       `json:"chartValues"`
}

// BuildReport runs the full pipeline: aggregate, grade, segment, series.
//
// TotalRevenue is sales-only. Manual ledger income and customer payments
// belong to the dashboard rollup, not to this report; see the dashboard
// handler for the other definition.
func BuildReport(products []RawProduct, sales []RawSale, opts Options) Report {
	opts = opts.normalized()

	agg := aggregate(products, sales, opts)
	ranked := assignGrades(agg.metrics, agg.totalRevenue)
	labels, values := buildSeries(agg.daily)

	return Report{
		TotalRevenue:       agg.totalRevenue,
		ProjectedMonth:     projectMonth(agg.totalRevenue, opts.LookbackDays),
		ActiveProductCount: len(products),
		UrgentRestock:      urgentRestock(ranked),
		DeadStock:          deadStock(ranked),
		StarProducts:       starProducts(ranked),
		ChartLabels:        labels,
		ChartValues:        values,
	}
}
