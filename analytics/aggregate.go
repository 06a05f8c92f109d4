package analytics

import "time"

// DefaultLookbackDays is the trailing window over which sales count as
// "active" for the analytics.
const DefaultLookbackDays = 30

// infiniteRunwayDays is the sentinel for stock that never sells: positive
// stock with zero velocity.
const infiniteRunwayDays = 999

// Options carries the knobs of one engine run. The clock is injected so
// reports are reproducible; a zero Now falls back to the system clock.
type Options struct {
	LookbackDays int
	Now          time.Time
}

func (o Options) normalized() Options {
	if o.LookbackDays <= 0 {
		o.LookbackDays = DefaultLookbackDays
	}
	if o.Now.IsZero() {
		o.Now = time.Now().UTC()
	}
	return o
}

// Grade is the ABC revenue tier of a product.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
)

// ProductMetric is the per-product analytics row derived for one report
// run. It is rebuilt from scratch on every computation and never persisted.
type ProductMetric struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Stock             int        `json:"stock"`
	SoldQty           float64    `json:"soldQty"`
	Revenue           float64    `json:"revenue"`
	LastSaleDate      *time.Time `json:"lastSaleDate,omitempty"`
	DaysSinceCreation int        `json:"daysSinceCreation"`
	Velocity          float64    `json:"velocity"`
	RunwayDays        float64    `json:"runwayDays"`
	Grade             Grade      `json:"grade"`
}

// aggregation is the intermediate table produced by one fold over the raw
// records: metrics in product input order, the sale-level revenue total,
// and the per-day revenue buckets keyed by UTC ISO date.
type aggregation struct {
	metrics      []ProductMetric
	totalRevenue float64
	daily        map[string]float64
}

// aggregate seeds one zero metric per known product, then folds the sales
// in. Seeding must happen first: grading and segmentation rely on every
// known product having an entry even when nothing sold.
func aggregate(products []RawProduct, sales []RawSale, opts Options) aggregation {
	agg := aggregation{
		metrics: make([]ProductMetric, 0, len(products)),
		daily:   make(map[string]float64),
	}
	index := make(map[string]int, len(products))

	for _, p := range products {
		// Products without a creation date count as maximally aged.
		created := time.Unix(0, 0).UTC()
		if t := ParseTimestamp(p.CreatedAt); t != nil {
			created = *t
		}
		index[p.ID] = len(agg.metrics)
		agg.metrics = append(agg.metrics, ProductMetric{
			ID:                p.ID,
			Name:              p.Name,
			Stock:             p.Stock,
			DaysSinceCreation: DaysDiff(created, opts.Now),
		})
	}

	cutoff := opts.Now.Add(-time.Duration(opts.LookbackDays) * 24 * time.Hour)
	for _, s := range sales {
		date := ParseTimestamp(s.Date)
		if date == nil || date.Before(cutoff) || date.After(opts.Now) {
			// The window is [cutoff, now]. Out-of-window sales, including
			// future-dated ones from clock-skewed imports, contribute to
			// nothing, not even totals.
			continue
		}

		amount := s.Amount()
		agg.totalRevenue += amount
		agg.daily[date.Format("2006-01-02")] += amount

		for _, it := range s.Items {
			i, ok := index[it.ProductID]
			if !ok {
				// Stale reference to a deleted product; the sale total
				// above already accounted for it.
				continue
			}
			m := &agg.metrics[i]
			qty := it.Qty()
			m.SoldQty += qty
			m.Revenue += it.UnitPrice() * qty
			if m.LastSaleDate == nil || date.After(*m.LastSaleDate) {
				d := *date
				m.LastSaleDate = &d
			}
		}
	}

	for i := range agg.metrics {
		m := &agg.metrics[i]
		m.Velocity = m.SoldQty / float64(opts.LookbackDays)
		switch {
		case m.Velocity > 0:
			m.RunwayDays = float64(m.Stock) / m.Velocity
		case m.Stock > 0:
			m.RunwayDays = infiniteRunwayDays
		default:
			m.RunwayDays = 0
		}
	}
	return agg
}
