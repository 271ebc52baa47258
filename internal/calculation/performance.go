package calculation

import (
	"github.com/shopspring/decimal"
)

// rateTier maps an effective-converted-premium threshold to a payout rate.
// Tiers are evaluated first-match against descending thresholds.
type rateTier struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

// tenureBand is one tenure bucket of the performance-rate ladder.
type tenureBand struct {
	MaxMonths int // 0 means unbounded
	Tiers     []rateTier
	Floor     decimal.Decimal // rate below the lowest threshold
}

// PerformanceRateTable computes the base performance-fee payout rate from the
// agent's tenure bucket and the effective converted premium.
type PerformanceRateTable struct {
	minEffective decimal.Decimal
	bands        []tenureBand
}

// NewPerformanceRateTable creates the standard performance-rate ladder. Rates
// rise with tenure bucket and with effective converted premium; anything under
// the 700,000P activity minimum pays nothing regardless of tenure.
func NewPerformanceRateTable() *PerformanceRateTable {
	thresholds := []decimal.Decimal{
		decimal.NewFromInt(10_000_000),
		decimal.NewFromInt(5_000_000),
		decimal.NewFromInt(2_000_000),
		decimal.NewFromInt(1_000_000),
	}
	band := func(maxMonths int, rates [4]float64, floor float64) tenureBand {
		tiers := make([]rateTier, len(thresholds))
		for i, th := range thresholds {
			tiers[i] = rateTier{Threshold: th, Rate: decimal.NewFromFloat(rates[i])}
		}
		return tenureBand{MaxMonths: maxMonths, Tiers: tiers, Floor: decimal.NewFromFloat(floor)}
	}
	return &PerformanceRateTable{
		minEffective: decimal.NewFromInt(700_000),
		bands: []tenureBand{
			band(12, [4]float64{0.75, 0.72, 0.70, 0.60}, 0.35),
			band(24, [4]float64{0.80, 0.77, 0.75, 0.65}, 0.40),
			band(36, [4]float64{0.85, 0.82, 0.80, 0.70}, 0.45),
			band(0, [4]float64{0.90, 0.87, 0.85, 0.75}, 0.50),
		},
	}
}

// BaseRate returns the payout rate for a tenure and effective converted
// premium. Total over its domain: every tenure and amount lands in a band.
func (p *PerformanceRateTable) BaseRate(tenureMonths int, effective decimal.Decimal) decimal.Decimal {
	if effective.LessThan(p.minEffective) {
		return decimal.Zero
	}
	for _, b := range p.bands {
		if b.MaxMonths != 0 && tenureMonths > b.MaxMonths {
			continue
		}
		for _, tier := range b.Tiers {
			if effective.GreaterThanOrEqual(tier.Threshold) {
				return tier.Rate
			}
		}
		return b.Floor
	}
	return decimal.Zero
}
