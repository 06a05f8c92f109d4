package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wrappedTime struct {
	t time.Time
}

func (w wrappedTime) Time() time.Time { return w.t }

func TestParseTimestampShapes(t *testing.T) {
	ref := time.Date(2024, 2, 1, 12, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		raw  any
		want *time.Time
	}{
		{"nil", nil, nil},
		{"native time", ref, &ref},
		{"time pointer", &ref, &ref},
		{"nil time pointer", (*time.Time)(nil), nil},
		{"zero time", time.Time{}, nil},
		{"method-bearing wrapper", wrappedTime{ref}, &ref},
		{"seconds map", map[string]any{"seconds": float64(ref.Unix())}, &ref},
		{"underscore seconds map", map[string]any{"_seconds": ref.Unix()}, &ref},
		{"map without seconds", map[string]any{"nanos": 12}, nil},
		{"epoch float", float64(ref.Unix()), &ref},
		{"epoch int64", ref.Unix(), &ref},
		{"json number", json.Number("1706790600"), timePtr(time.Unix(1706790600, 0).UTC())},
		{"rfc3339 string", "2024-02-01T12:30:00Z", &ref},
		{"date-only string", "2024-02-01", timePtr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))},
		{"numeric string", "1706790600", timePtr(time.Unix(1706790600, 0).UTC())},
		{"garbage string", "not a date", nil},
		{"bool", true, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseTimestamp(tc.raw)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tc.want.Equal(*got), "want %v got %v", tc.want, got)
		})
	}
}

func TestParseTimestampNeverMutates(t *testing.T) {
	doc := map[string]any{"seconds": float64(1000)}
	_ = ParseTimestamp(doc)
	assert.Equal(t, map[string]any{"seconds": float64(1000)}, doc)
}

func TestToNumber(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want float64
	}{
		{"nil", nil, 0},
		{"float", 12.5, 12.5},
		{"int", 7, 7},
		{"int64", int64(-3), -3},
		{"json number", json.Number("99.9"), 99.9},
		{"numeric string", " 42 ", 42},
		{"bad string", "12abc", 0},
		{"bad json number", json.Number("x"), 0},
		{"bool", true, 0},
		{"struct", struct{}{}, 0},
		{"nan string", "NaN", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToNumber(tc.raw))
		})
	}
}

func TestDaysDiff(t *testing.T) {
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	if got := DaysDiff(base, base); got != 0 {
		t.Fatalf("expected 0 for identical instants, got %d", got)
	}
	if got := DaysDiff(base, base.Add(24*time.Hour)); got != 1 {
		t.Fatalf("expected 1 full day, got %d", got)
	}
	// Partial days round up.
	if got := DaysDiff(base, base.Add(25*time.Hour)); got != 2 {
		t.Fatalf("expected ceiling to 2 days, got %d", got)
	}
	// Order does not matter.
	if got := DaysDiff(base.Add(72*time.Hour), base); got != 3 {
		t.Fatalf("expected 3 days regardless of order, got %d", got)
	}
}

func timePtr(t time.Time) *time.Time { return &t }
