package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUrgentRestockFilter(t *testing.T) {
	ranked := []ProductMetric{
		{ID: "a-short", Stock: 4, RunwayDays: 6, Grade: GradeA},
		{ID: "b-short", Stock: 2, RunwayDays: 3, Grade: GradeB},
		{ID: "c-short", Stock: 1, RunwayDays: 2, Grade: GradeC},  // C never urgent
		{ID: "a-long", Stock: 50, RunwayDays: 40, Grade: GradeA}, // plenty of runway
		{ID: "a-empty", Stock: 0, RunwayDays: 0, Grade: GradeA},  // nothing left to sell
	}

	urgent := urgentRestock(ranked)
	require.Len(t, urgent, 2)
	// Order inherited from the ranked input, not re-ranked by urgency.
	assert.Equal(t, "a-short", urgent[0].ID)
	assert.Equal(t, "b-short", urgent[1].ID)
}

func TestUrgentRestockCapsAtFive(t *testing.T) {
	var ranked []ProductMetric
	for i := 0; i < 8; i++ {
		ranked = append(ranked, ProductMetric{ID: string(rune('a' + i)), Stock: 1, RunwayDays: 1, Grade: GradeA})
	}
	assert.Len(t, urgentRestock(ranked), 5)
}

func TestDeadStockFilterAndOrder(t *testing.T) {
	ranked := []ProductMetric{
		{ID: "old-small", Stock: 10, SoldQty: 0, DaysSinceCreation: 20},
		{ID: "old-big", Stock: 40, SoldQty: 0, DaysSinceCreation: 30},
		{ID: "too-new", Stock: 10, SoldQty: 0, DaysSinceCreation: 10},
		{ID: "still-selling", Stock: 10, SoldQty: 3, DaysSinceCreation: 100},
		{ID: "no-stock", Stock: 0, SoldQty: 0, DaysSinceCreation: 100},
	}

	dead := deadStock(ranked)
	require.Len(t, dead, 2)
	// Re-sorted by stock descending.
	assert.Equal(t, "old-big", dead[0].ID)
	assert.Equal(t, "old-small", dead[1].ID)
}

func TestDeadStockAgeBoundary(t *testing.T) {
	// Exactly 15 days is still "new"; the gate is strictly greater.
	ranked := []ProductMetric{{ID: "boundary", Stock: 5, SoldQty: 0, DaysSinceCreation: 15}}
	assert.Empty(t, deadStock(ranked))

	ranked[0].DaysSinceCreation = 16
	assert.Len(t, deadStock(ranked), 1)
}

func TestStarProductsTopFiveATier(t *testing.T) {
	var ranked []ProductMetric
	for i := 0; i < 7; i++ {
		ranked = append(ranked, ProductMetric{ID: string(rune('a' + i)), Grade: GradeA})
	}
	ranked = append(ranked, ProductMetric{ID: "b1", Grade: GradeB})

	stars := starProducts(ranked)
	require.Len(t, stars, 5)
	assert.Equal(t, "a", stars[0].ID)
	assert.Equal(t, "e", stars[4].ID)
}
