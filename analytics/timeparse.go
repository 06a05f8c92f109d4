package analytics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// timeLayouts are tried in order when a timestamp arrives as a string.
// Older app versions and offline imports wrote dates in several formats.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// timeConvertible matches store timestamp values that carry their own
// conversion method (pgtype.Timestamptz and friends).
type timeConvertible interface {
	Time() time.Time
}

// ParseTimestamp normalizes the timestamp shapes found in stored sale
// documents into a *time.Time in UTC. The checks run in a fixed order:
// native time values, method-bearing wrappers, epoch-seconds objects,
// numeric epochs, then string layouts. Anything unparseable yields nil —
// never an error — and callers must treat nil as "outside every window".
func ParseTimestamp(raw any) *time.Time {
	switch v := raw.(type) {
	case nil:
		return nil
	case time.Time:
		return validTime(v)
	case *time.Time:
		if v == nil {
			return nil
		}
		return validTime(*v)
	}

	if c, ok := raw.(timeConvertible); ok {
		return validTime(c.Time())
	}

	switch v := raw.(type) {
	case map[string]any:
		for _, key := range []string{"seconds", "_seconds"} {
			if sec, ok := v[key]; ok {
				return epochSeconds(ToNumber(sec))
			}
		}
		return nil
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return epochSeconds(f)
		}
		return nil
	case float64, float32, int, int32, int64:
		return epochSeconds(ToNumber(v))
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return validTime(t)
			}
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return epochSeconds(f)
		}
		return nil
	}
	return nil
}

func validTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

func epochSeconds(sec float64) *time.Time {
	if math.IsNaN(sec) || math.IsInf(sec, 0) {
		return nil
	}
	t := time.Unix(int64(sec), 0).UTC()
	return &t
}

// ToNumber coerces the numeric-ish values found in stored documents into a
// float64. Anything that cannot be read as a number degrades to 0.
func ToNumber(raw any) float64 {
	var f float64
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// DaysDiff returns the absolute whole-day difference between two instants,
// rounded up. Never negative.
func DaysDiff(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / 24))
}
