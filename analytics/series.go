package analytics

import (
	"fmt"
	"sort"
	"time"
)

// buildSeries flattens the daily revenue buckets into parallel label/value
// slices in chronological order. Labels are day/month, matching the chart
// axis on the intelligence screen.
func buildSeries(daily map[string]float64) ([]string, []float64) {
	keys := make([]string, 0, len(daily))
	for k := range daily {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	labels := make([]string, 0, len(keys))
	values := make([]float64, 0, len(keys))
	for _, k := range keys {
		label := k
		if t, err := time.Parse("2006-01-02", k); err == nil {
			label = fmt.Sprintf("%d/%d", t.Day(), int(t.Month()))
		}
		labels = append(labels, label)
		values = append(values, daily[k])
	}
	return labels, values
}

// projectMonth extrapolates the window's daily average over a 30-day
// month. Deliberately a straight line: no trend, no seasonality.
func projectMonth(totalRevenue float64, lookbackDays int) float64 {
	return totalRevenue / float64(lookbackDays) * 30
}
