package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignGradesParetoBoundaries(t *testing.T) {
	metrics := []ProductMetric{
		{ID: "mid", Revenue: 15},
		{ID: "top", Revenue: 80},
		{ID: "tail", Revenue: 5},
	}

	// Cumulative shares land exactly on the boundaries: 0.80, 0.95, 1.00.
	// Boundary-inclusive: <= 0.80 is A, <= 0.95 is B.
	ranked := assignGrades(metrics, 100)
	require.Len(t, ranked, 3)
	assert.Equal(t, "top", ranked[0].ID)
	assert.Equal(t, GradeA, ranked[0].Grade)
	assert.Equal(t, "mid", ranked[1].ID)
	assert.Equal(t, GradeB, ranked[1].Grade)
	assert.Equal(t, "tail", ranked[2].ID)
	assert.Equal(t, GradeC, ranked[2].Grade)
}

func TestAssignGradesZeroRevenueAllA(t *testing.T) {
	metrics := []ProductMetric{
		{ID: "a"},
		{ID: "b"},
	}
	ranked := assignGrades(metrics, 0)
	for _, m := range ranked {
		assert.Equal(t, GradeA, m.Grade)
	}
}

func TestAssignGradesTiesKeepInputOrder(t *testing.T) {
	metrics := []ProductMetric{
		{ID: "first", Revenue: 10},
		{ID: "second", Revenue: 10},
		{ID: "third", Revenue: 10},
	}
	ranked := assignGrades(metrics, 30)
	assert.Equal(t, "first", ranked[0].ID)
	assert.Equal(t, "second", ranked[1].ID)
	assert.Equal(t, "third", ranked[2].ID)
}

func TestAssignGradesDoesNotMutateInput(t *testing.T) {
	metrics := []ProductMetric{
		{ID: "a", Revenue: 1},
		{ID: "b", Revenue: 2},
	}
	_ = assignGrades(metrics, 3)
	assert.Equal(t, "a", metrics[0].ID)
	assert.Equal(t, Grade(""), metrics[0].Grade)
}
