package calculation

import (
	"github.com/shopspring/decimal"
)

var (
	strategicFullPremium = decimal.NewFromInt(50_000)
	strategicHalfPremium = decimal.NewFromInt(30_000)
	strategicHalf        = decimal.NewFromFloat(0.5)
)

// StrategicCount returns how much one strategic-health contract counts toward
// the bonus tier: a full count at 50,000 won monthly premium, half at 30,000.
func StrategicCount(premium int64) decimal.Decimal {
	p := decimal.NewFromInt(premium)
	switch {
	case p.GreaterThanOrEqual(strategicFullPremium):
		return decimal.NewFromInt(1)
	case p.GreaterThanOrEqual(strategicHalfPremium):
		return strategicHalf
	default:
		return decimal.Zero
	}
}

// UnitBonus returns the per-count bonus once the total strategic count crosses
// a tier. The unit is shared: every strategic entry is paid at the tier the
// whole month's count reaches.
func UnitBonus(totalCount decimal.Decimal) int64 {
	switch {
	case totalCount.GreaterThanOrEqual(decimal.NewFromInt(5)):
		return 70_000
	case totalCount.GreaterThanOrEqual(decimal.NewFromInt(3)):
		return 60_000
	case totalCount.GreaterThanOrEqual(decimal.NewFromInt(2)):
		return 55_000
	case totalCount.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return 50_000
	default:
		return 0
	}
}

// EntryBonus returns one entry's strategic bonus: floor(count x unit).
func EntryBonus(count decimal.Decimal, unit int64) int64 {
	return count.Mul(decimal.NewFromInt(unit)).IntPart()
}
