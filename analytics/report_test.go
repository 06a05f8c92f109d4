package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportNow = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

func reportOpts() Options {
	return Options{LookbackDays: 30, Now: reportNow}
}

func daysAgo(n int) time.Time {
	return reportNow.Add(-time.Duration(n) * 24 * time.Hour)
}

func TestBuildReportWindowExclusion(t *testing.T) {
	products := []RawProduct{{ID: "p1", Name: "Sugar", Stock: 10, CreatedAt: daysAgo(60)}}
	// 31 days before "now": one day outside the 30-day window.
	sales := []RawSale{{Date: "2024-01-01", Total: float64(100), Items: []RawSaleItem{
		{ProductID: "p1", Quantity: float64(2), Price: float64(50)},
	}}}

	report := BuildReport(products, sales, reportOpts())

	assert.Equal(t, 0.0, report.TotalRevenue)
	assert.Empty(t, report.ChartLabels)
	assert.Empty(t, report.ChartValues)
	// The product metric stayed untouched by the excluded sale.
	require.Len(t, report.StarProducts, 1)
	assert.Equal(t, 0.0, report.StarProducts[0].SoldQty)
	assert.Equal(t, 0.0, report.StarProducts[0].Revenue)
}

func TestBuildReportFutureDatedSaleExcluded(t *testing.T) {
	products := []RawProduct{{ID: "p1", Name: "Sugar", Stock: 10, CreatedAt: daysAgo(60)}}
	sales := []RawSale{{Date: daysAgo(-5), Items: []RawSaleItem{
		{ProductID: "p1", Quantity: 2, Price: 10},
	}}}

	report := BuildReport(products, sales, reportOpts())
	if report.TotalRevenue != 0 {
		t.Fatalf("future-dated sale counted toward revenue: got %v", report.TotalRevenue)
	}
	if len(report.ChartLabels) != 0 {
		t.Fatalf("future-dated sale produced chart buckets: %v", report.ChartLabels)
	}
}

func TestBuildReportUnparseableDateExcluded(t *testing.T) {
	sales := []RawSale{{Date: "someday", Total: float64(40)}}
	report := BuildReport(nil, sales, reportOpts())
	assert.Equal(t, 0.0, report.TotalRevenue)
}

func TestBuildReportRunwaySentinels(t *testing.T) {
	products := []RawProduct{
		{ID: "stalled", Name: "Stalled", Stock: 50, CreatedAt: reportNow},
		{ID: "empty", Name: "Empty", Stock: 0, CreatedAt: reportNow},
	}

	report := BuildReport(products, nil, reportOpts())

	// Zero revenue grades everything A, so both land in the star list in
	// input order.
	require.Len(t, report.StarProducts, 2)
	assert.Equal(t, 999.0, report.StarProducts[0].RunwayDays)
	assert.Equal(t, 0.0, report.StarProducts[0].Velocity)
	assert.Equal(t, 0.0, report.StarProducts[1].RunwayDays)
}

func TestBuildReportGradePartition(t *testing.T) {
	products := []RawProduct{
		{ID: "p1", Name: "Top", CreatedAt: reportNow},
		{ID: "p2", Name: "Mid", CreatedAt: reportNow},
		{ID: "p3", Name: "Tail", CreatedAt: reportNow},
	}
	sales := []RawSale{{Date: daysAgo(5), Items: []RawSaleItem{
		{ProductID: "p1", Quantity: float64(1), Price: float64(80)},
		{ProductID: "p2", Quantity: float64(1), Price: float64(15)},
		{ProductID: "p3", Quantity: float64(1), Price: float64(5)},
	}}}

	report := BuildReport(products, sales, reportOpts())

	assert.Equal(t, 100.0, report.TotalRevenue)
	// Shares 0.80 / 0.95 / 1.00 partition into exactly one A.
	require.Len(t, report.StarProducts, 1)
	assert.Equal(t, "p1", report.StarProducts[0].ID)
	assert.Equal(t, GradeA, report.StarProducts[0].Grade)
}

func TestBuildReportDeadStockAgeGate(t *testing.T) {
	products := []RawProduct{
		{ID: "aged", Name: "Aged", Stock: 10, CreatedAt: daysAgo(20)},
		{ID: "fresh", Name: "Fresh", Stock: 10, CreatedAt: daysAgo(10)},
	}

	report := BuildReport(products, nil, reportOpts())

	require.Len(t, report.DeadStock, 1)
	assert.Equal(t, "aged", report.DeadStock[0].ID)
}

func TestBuildReportMissingCreationDateCountsAsAged(t *testing.T) {
	products := []RawProduct{{ID: "legacy", Name: "Legacy", Stock: 3}}
	report := BuildReport(products, nil, reportOpts())
	require.Len(t, report.DeadStock, 1)
	assert.Equal(t, "legacy", report.DeadStock[0].ID)
}

func TestBuildReportUnknownProductTolerance(t *testing.T) {
	products := []RawProduct{{ID: "p1", Name: "Known", Stock: 5, CreatedAt: reportNow}}
	sales := []RawSale{{Date: daysAgo(3), Items: []RawSaleItem{
		{ProductID: "ghost", Quantity: float64(2), Price: float64(10)},
	}}}

	report := BuildReport(products, sales, reportOpts())

	// The sale still counts at the sale level.
	assert.Equal(t, 20.0, report.TotalRevenue)
	require.Len(t, report.ChartValues, 1)
	assert.Equal(t, 20.0, report.ChartValues[0])
	// No spurious metric appeared for the deleted product.
	assert.Equal(t, 1, report.ActiveProductCount)
	require.Len(t, report.StarProducts, 1)
	assert.Equal(t, "p1", report.StarProducts[0].ID)
	assert.Equal(t, 0.0, report.StarProducts[0].SoldQty)
}

func TestBuildReportZeroItemSaleCountsTowardTotals(t *testing.T) {
	sales := []RawSale{{Date: daysAgo(2), Total: float64(50)}}
	report := BuildReport(nil, sales, reportOpts())
	assert.Equal(t, 50.0, report.TotalRevenue)
	require.Len(t, report.ChartValues, 1)
	assert.Equal(t, 50.0, report.ChartValues[0])
}

func TestBuildReportChartChronology(t *testing.T) {
	sales := []RawSale{
		{Date: time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC), Total: float64(5)},
		{Date: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), Total: float64(3)},
		{Date: time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC), Total: float64(2)},
	}

	report := BuildReport(nil, sales, reportOpts())

	assert.Equal(t, []string{"15/1", "20/1"}, report.ChartLabels)
	assert.Equal(t, []float64{5, 5}, report.ChartValues)
}

func TestBuildReportMonthlyProjection(t *testing.T) {
	sales := []RawSale{{Date: daysAgo(1), Total: float64(300)}}
	report := BuildReport(nil, sales, reportOpts())
	assert.Equal(t, 300.0, report.ProjectedMonth)
}

func TestBuildReportUrgentRestock(t *testing.T) {
	products := []RawProduct{
		{ID: "hot", Name: "Hot", Stock: 4, CreatedAt: daysAgo(90)},
		{ID: "slow", Name: "Slow", Stock: 100, CreatedAt: daysAgo(90)},
	}
	sales := []RawSale{{Date: daysAgo(2), Items: []RawSaleItem{
		// hot: 20 sold over 30 days -> velocity 0.667/day, runway 6 days.
		{ProductID: "hot", Quantity: float64(20), Price: float64(4)},
		// slow: same velocity but 100 in stock -> runway 150 days.
		{ProductID: "slow", Quantity: float64(20), Price: float64(1)},
	}}}

	report := BuildReport(products, sales, reportOpts())

	require.Len(t, report.UrgentRestock, 1)
	assert.Equal(t, "hot", report.UrgentRestock[0].ID)
	assert.Less(t, report.UrgentRestock[0].RunwayDays, 7.0)
}

func TestBuildReportIdempotent(t *testing.T) {
	products := []RawProduct{
		{ID: "p1", Name: "A", Stock: 4, CreatedAt: daysAgo(40)},
		{ID: "p2", Name: "B", Stock: 9, CreatedAt: daysAgo(20)},
	}
	sales := []RawSale{
		{Date: daysAgo(3), Items: []RawSaleItem{{ProductID: "p1", Quantity: float64(2), Price: float64(7)}}},
		{Date: daysAgo(8), Total: float64(12)},
	}

	first := BuildReport(products, sales, reportOpts())
	second := BuildReport(products, sales, reportOpts())
	assert.Equal(t, first, second)
}

func TestBuildReportNeverPanicsOnOddInput(t *testing.T) {
	products := []RawProduct{
		{ID: "", Name: "", Stock: -5, CreatedAt: false},
		{ID: "dup", Stock: 1}, {ID: "dup", Stock: 2},
	}
	sales := []RawSale{
		{},
		{Date: map[string]any{"nanos": 1}},
		{Date: daysAgo(1), Total: "12x", Items: []RawSaleItem{{ProductID: "dup", Quantity: "NaN", Price: nil}}},
	}

	assert.NotPanics(t, func() {
		report := BuildReport(products, sales, Options{Now: reportNow})
		assert.Equal(t, 3, report.ActiveProductCount)
	})
}

func TestBuildReportDefaultOptions(t *testing.T) {
	report := BuildReport(nil, nil, Options{})
	assert.Equal(t, 0.0, report.TotalRevenue)
	assert.Equal(t, 0.0, report.ProjectedMonth)
	assert.Empty(t, report.UrgentRestock)
	assert.Empty(t, report.DeadStock)
	assert.Empty(t, report.StarProducts)
}
