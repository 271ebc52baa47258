package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lifecomm/commission-calculator/internal/domain"
	"github.com/lifecomm/commission-calculator/internal/master"
)

// Installment checkpoints used for the later-year retention factors. These are
// fixed reference tenures, not the agent's current tenure.
const (
	checkpoint13th = 13
	checkpoint25th = 25
)

var (
	// maxPerformanceRate is the ceiling the initial-settlement-2 fee bridges up to.
	maxPerformanceRate = decimal.NewFromFloat(0.75)

	// init2MinEffective is the effective-converted floor for initial settlement 2.
	init2MinEffective = decimal.NewFromInt(1_000_000)
)

// Engine orchestrates the commission calculation: converted premiums, the
// performance and guarantee ladders, retention adjustment and the strategic-
// health bonus. It holds no per-calculation state; Calculate is a pure function
// of its arguments.
type Engine struct {
	Retention   *RetentionPolicy
	Performance *PerformanceRateTable
	Guarantee   *GuaranteeTable
}

// NewEngine creates an engine with the standard policy tables.
func NewEngine() *Engine {
	return &Engine{
		Retention:   NewRetentionPolicy(),
		Performance: NewPerformanceRateTable(),
		Guarantee:   NewGuaranteeTable(),
	}
}

// TenureMonths returns the 1-indexed number of months since the delegation
// month: the delegation month itself counts as month 1.
func TenureMonths(now time.Time, year, month int) int {
	return (now.Year()-year)*12 + (int(now.Month()) - month) + 1
}

// DirectRecruitRate returns the performance-fee uplift for the month's direct
// recruits. The engine applies it only while a base rate is being paid.
func DirectRecruitRate(recruits int) decimal.Decimal {
	switch {
	case recruits >= 3:
		return decimal.NewFromFloat(0.15)
	case recruits == 2:
		return decimal.NewFromFloat(0.10)
	case recruits == 1:
		return decimal.NewFromFloat(0.05)
	default:
		return decimal.Zero
	}
}

// Calculate runs the full commission calculation for one session. Entries whose
// (product, type, payyear) no longer resolve in the master contribute zero
// converted premium instead of failing the run.
func (e *Engine) Calculate(session *domain.Session, inputs domain.PolicyInputs, now time.Time, table *master.Table) *domain.CalculationResult {
	hundred := decimal.NewFromInt(100)
	entries := session.Entries()

	// Step 1: converted premiums; the year-1 sum is the month's raw converted
	// performance.
	type converted struct {
		entry      domain.ContractEntry
		y1, y2, y3 decimal.Decimal
	}
	conv := make([]converted, len(entries))
	totalRaw := decimal.Zero
	for i, entry := range entries {
		rates := table.Lookup(entry.Product, entry.Type, entry.PayYear)
		premium := decimal.NewFromInt(entry.Premium)
		c := converted{
			entry: entry,
			y1:    premium.Mul(rates.Year1).Div(hundred),
			y2:    premium.Mul(rates.Year2).Div(hundred),
			y3:    premium.Mul(rates.Year3).Div(hundred),
		}
		conv[i] = c
		totalRaw = totalRaw.Add(c.y1)
	}

	// Step 2: net out the expected clawback performance.
	effective := totalRaw.Sub(inputs.RefundPerformance)
	if effective.IsNegative() {
		effective = decimal.Zero
	}

	tenure := TenureMonths(now, inputs.CommissionYear, inputs.CommissionMonth)
	baseRate := e.Performance.BaseRate(tenure, effective)

	// Initial settlement 2 bridges the gap to the maximum rate during early
	// tenure, under activity and amount conditions.
	withinWindow := tenure <= 12
	amountMet := effective.GreaterThanOrEqual(init2MinEffective)
	init2Eligible := inputs.StandardActivity && withinWindow && amountMet

	deltaR := decimal.Zero
	if init2Eligible {
		deltaR = maxPerformanceRate.Sub(baseRate)
		if deltaR.IsNegative() {
			deltaR = decimal.Zero
		}
	}

	var init2Reasons []domain.ReasonCode
	if !inputs.StandardActivity {
		init2Reasons = append(init2Reasons, domain.ReasonStandardActivityMissed)
	}
	if !withinWindow {
		init2Reasons = append(init2Reasons, domain.ReasonTenureBeyond12)
	}
	if !amountMet {
		init2Reasons = append(init2Reasons, domain.ReasonEffectiveUnder1M)
	}
	if !init2Eligible && withinWindow && amountMet && baseRate.GreaterThanOrEqual(maxPerformanceRate) {
		init2Reasons = append(init2Reasons, domain.ReasonMaxRateReached)
	}

	// Retention factors at the current month and the two fixed installment
	// checkpoints.
	stdNow, stdNowOK := e.Retention.StandardRetention(tenure)
	std13, std13OK := e.Retention.StandardRetention(checkpoint13th)
	std25, std25OK := e.Retention.StandardRetention(checkpoint25th)
	f1 := e.Retention.AdjustmentFactor(inputs.Retention1st, stdNow, stdNowOK)
	f13 := e.Retention.AdjustmentFactor(inputs.Retention13th, std13, std13OK)
	f25 := e.Retention.AdjustmentFactor(inputs.Retention25th, std25, std25OK)

	// The strategic-health unit bonus is set by the month's total count across
	// all strategic entries.
	totalCount := decimal.Zero
	for _, c := range conv {
		if table.IsStrategic(c.entry.Product) {
			totalCount = totalCount.Add(StrategicCount(c.entry.Premium))
		}
	}
	unitBonus := UnitBonus(totalCount)

	drRate := DirectRecruitRate(inputs.DirectRecruits)

	// Per-entry fees.
	results := make([]domain.EntryResult, len(conv))
	sumRecruit, sumPerf1, sumInit2 := decimal.Zero, decimal.Zero, decimal.Zero
	var sumBonus int64
	twelve := decimal.NewFromInt(12)
	for i, c := range conv {
		r := domain.EntryResult{
			Entry:          c.entry,
			ConvertedYear1: c.y1,
			ConvertedYear2: c.y2,
			ConvertedYear3: c.y3,
		}

		// The recruit fee is the year-1 converted premium itself.
		r.RecruitFee = c.y1

		perf1Rate := baseRate.Mul(f1)
		if baseRate.IsPositive() {
			perf1Rate = perf1Rate.Add(drRate)
		}
		r.Perf1 = c.y1.Mul(perf1Rate)
		r.Perf2 = c.y2.Mul(baseRate).Mul(f13)
		r.Perf3 = c.y3.Mul(baseRate).Mul(f25)

		r.Init2Year1 = c.y1.Mul(deltaR).Mul(f1)
		r.Init2Year2 = c.y2.Mul(deltaR).Mul(f13)
		r.Init2Year3 = c.y3.Mul(deltaR).Mul(f25)

		r.Maintenance1 = c.y2.Div(twelve)
		r.Maintenance2 = c.y3.Div(twelve)

		if table.IsStrategic(c.entry.Product) {
			r.Strategic = true
			r.StrategicCount = StrategicCount(c.entry.Premium)
			r.StrategicBonus = EntryBonus(r.StrategicCount, unitBonus)
		}

		sumRecruit = sumRecruit.Add(r.RecruitFee)
		sumPerf1 = sumPerf1.Add(r.Perf1)
		sumInit2 = sumInit2.Add(r.Init2Year1)
		sumBonus += r.StrategicBonus
		results[i] = r
	}

	// Base compensation net of the expected clawback amount.
	baseComp := sumRecruit.Add(sumPerf1).Add(sumInit2)
	baseCompAfterRefund := baseComp.Sub(inputs.RefundAmount)
	if baseCompAfterRefund.IsNegative() {
		baseCompAfterRefund = decimal.Zero
	}

	// Settlement guarantee tops base compensation up to the guaranteed amount
	// during the first 12 tenure months.
	baseGuarantee := e.Guarantee.BaseGuarantee(effective)
	addOn := e.Guarantee.AddOn(inputs.DirectRecruits)
	finalGuarantee := baseGuarantee.Add(addOn)

	retentionMet := !stdNowOK || inputs.Retention1st >= stdNow
	settleEligible := withinWindow && inputs.StandardActivity && retentionMet && finalGuarantee.IsPositive()

	var settleReasons []domain.ReasonCode
	if !finalGuarantee.IsPositive() {
		settleReasons = append(settleReasons, domain.ReasonGuaranteeBandNotReached)
	}
	if !inputs.StandardActivity {
		settleReasons = append(settleReasons, domain.ReasonStandardActivityMissed)
	}
	if !retentionMet {
		settleReasons = append(settleReasons, domain.ReasonRetentionBelowStandard)
	}

	settleBonus := decimal.Zero
	if settleEligible {
		settleBonus = finalGuarantee.Sub(baseCompAfterRefund)
		if settleBonus.IsNegative() {
			settleBonus = decimal.Zero
		}
	}

	// Next-month payable; the settle bonus only counts inside the guarantee
	// window.
	total := sumRecruit.Add(sumPerf1).Add(sumInit2).Add(decimal.NewFromInt(sumBonus))
	if withinWindow {
		total = total.Add(settleBonus)
	}

	return &domain.CalculationResult{
		TotalConvertedRaw:  totalRaw,
		RefundPerformance:  inputs.RefundPerformance,
		EffectiveConverted: effective,

		TenureMonths:      tenure,
		BaseRate:          baseRate,
		DeltaR:            deltaR,
		DirectRecruitRate: drRate,

		StdRetention:        stdNow,
		StdRetentionDefined: stdNowOK,
		Retention1st:        inputs.Retention1st,
		Factor1st:           f1,
		Factor13th:          f13,
		Factor25th:          f25,

		SumRecruit:        sumRecruit,
		SumPerf1:          sumPerf1,
		SumInit2:          sumInit2,
		SumStrategicBonus: sumBonus,

		BaseCompensation:    baseComp,
		BaseCompAfterRefund: baseCompAfterRefund,
		BaseGuarantee:       baseGuarantee,
		GuaranteeAddOn:      addOn,
		FinalGuarantee:      finalGuarantee,
		SettleBonus:         settleBonus,
		GuaranteeWindowOpen: withinWindow,

		NextMonthTotal: total,

		Init2Eligible:  init2Eligible,
		Init2Reasons:   init2Reasons,
		SettleEligible: settleEligible,
		SettleReasons:  settleReasons,

		Entries: results,
	}
}
