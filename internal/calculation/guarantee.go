package calculation

import (
	"github.com/shopspring/decimal"
)

// guaranteeStep maps an effective-converted-premium threshold to a guaranteed
// settlement amount.
type guaranteeStep struct {
	Threshold decimal.Decimal
	Amount    decimal.Decimal
}

// GuaranteeTable computes the guaranteed-settlement amount: a step function of
// the effective converted premium plus a direct-recruit add-on.
type GuaranteeTable struct {
	steps []guaranteeStep
}

// NewGuaranteeTable creates the standard settlement-guarantee steps.
func NewGuaranteeTable() *GuaranteeTable {
	step := func(threshold, amount int64) guaranteeStep {
		return guaranteeStep{Threshold: decimal.NewFromInt(threshold), Amount: decimal.NewFromInt(amount)}
	}
	return &GuaranteeTable{
		steps: []guaranteeStep{
			step(5_000_000, 5_000_000),
			step(4_000_000, 4_500_000),
			step(3_000_000, 4_000_000),
			step(2_500_000, 3_500_000),
			step(2_000_000, 3_000_000),
			step(1_500_000, 2_500_000),
			step(1_000_000, 1_500_000),
		},
	}
}

// BaseGuarantee returns the guaranteed amount for an effective converted
// premium, zero below the lowest step.
func (g *GuaranteeTable) BaseGuarantee(effective decimal.Decimal) decimal.Decimal {
	for _, s := range g.steps {
		if effective.GreaterThanOrEqual(s.Threshold) {
			return s.Amount
		}
	}
	return decimal.Zero
}

// AddOn returns the direct-recruit top-up: one recruit adds 1,000,000 won, two
// or more add 2,000,000.
func (g *GuaranteeTable) AddOn(directRecruits int) decimal.Decimal {
	switch {
	case directRecruits >= 2:
		return decimal.NewFromInt(2_000_000)
	case directRecruits == 1:
		return decimal.NewFromInt(1_000_000)
	default:
		return decimal.Zero
	}
}

// FinalGuarantee returns base plus add-on.
func (g *GuaranteeTable) FinalGuarantee(effective decimal.Decimal, directRecruits int) decimal.Decimal {
	return g.BaseGuarantee(effective).Add(g.AddOn(directRecruits))
}
