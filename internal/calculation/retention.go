package calculation

import (
	"github.com/shopspring/decimal"
)

// RetentionPolicy defines the company-standard retention expectation per tenure
// bucket and the multiplicative adjustment applied when an agent's retention
// falls short of it.
type RetentionPolicy struct{}

// NewRetentionPolicy creates the standard retention policy.
func NewRetentionPolicy() *RetentionPolicy {
	return &RetentionPolicy{}
}

var (
	factorFull   = decimal.NewFromInt(1)
	factorMinor  = decimal.NewFromFloat(0.85)
	factorSevere = decimal.NewFromFloat(0.70)
)

// StandardRetention returns the expected retention percentage for a tenure
// bucket. The second return is false for the first two tenure months, when no
// standard applies yet.
func (RetentionPolicy) StandardRetention(tenureMonths int) (int, bool) {
	switch {
	case tenureMonths <= 2:
		return 0, false
	case tenureMonths <= 6:
		return 93, true
	case tenureMonths <= 12:
		return 90, true
	default:
		return 85, true
	}
}

// AdjustmentFactor converts a (user retention, standard retention) pair into a
// payout multiplier. With no standard defined the factor is 1.00 (no penalty);
// meeting the standard pays in full, a shortfall under 5 points pays 85%, and a
// shortfall of 5 points or more pays 70%.
func (RetentionPolicy) AdjustmentFactor(userPct, standardPct int, standardDefined bool) decimal.Decimal {
	if !standardDefined {
		return factorFull
	}
	delta := userPct - standardPct
	switch {
	case delta >= 0:
		return factorFull
	case delta > -5:
		return factorMinor
	default:
		return factorSevere
	}
}
