package domain

import (
	"github.com/shopspring/decimal"
)

// ReasonCode enumerates why a conditional fee was not paid out. Renderers map
// codes to display text; the engine never produces free-form reason strings.
type ReasonCode string

const (
	// Settlement-guarantee reasons.
	ReasonGuaranteeBandNotReached ReasonCode = "guarantee-band-not-reached"
	ReasonStandardActivityMissed  ReasonCode = "standard-activity-missed"
	ReasonRetentionBelowStandard  ReasonCode = "retention-below-standard"

	// Initial-settlement-2 reasons.
	ReasonTenureBeyond12   ReasonCode = "tenure-beyond-12"
	ReasonEffectiveUnder1M ReasonCode = "effective-under-1m"
	ReasonMaxRateReached   ReasonCode = "max-rate-reached"
)

// EntryResult is the per-contract breakdown of one calculation.
type EntryResult struct {
	Entry ContractEntry `json:"entry"`

	// Converted premiums per contract year (premium x rateN / 100).
	ConvertedYear1 decimal.Decimal `json:"converted_year1"`
	ConvertedYear2 decimal.Decimal `json:"converted_year2"`
	ConvertedYear3 decimal.Decimal `json:"converted_year3"`

	// First-year (next-month payable) fees.
	RecruitFee decimal.Decimal `json:"recruit_fee"`
	Perf1      decimal.Decimal `json:"perf1"`
	Init2Year1 decimal.Decimal `json:"init2_1"`

	// Later-year fees.
	Perf2      decimal.Decimal `json:"perf2"`
	Perf3      decimal.Decimal `json:"perf3"`
	Init2Year2 decimal.Decimal `json:"init2_2"`
	Init2Year3 decimal.Decimal `json:"init2_3"`

	// Monthly-equivalent maintenance fees for installments 13-24 and 25-36.
	// Informational only; never summed into totals.
	Maintenance1 decimal.Decimal `json:"maintenance1"`
	Maintenance2 decimal.Decimal `json:"maintenance2"`

	// Strategic-health bonus.
	Strategic      bool            `json:"strategic"`
	StrategicCount decimal.Decimal `json:"strategic_count"`
	StrategicBonus int64           `json:"strategic_bonus"`
}

// CalculationResult is the full output of one engine run: the aggregates the
// summary view renders plus the per-entry breakdowns. It is derived state,
// recomputed in full on every calculate action.
type CalculationResult struct {
	// Converted-premium aggregates.
	TotalConvertedRaw  decimal.Decimal `json:"total_converted_raw"`
	RefundPerformance  decimal.Decimal `json:"refund_performance"`
	EffectiveConverted decimal.Decimal `json:"effective_converted"`

	// Tenure and rates.
	TenureMonths      int             `json:"tenure_months"`
	BaseRate          decimal.Decimal `json:"base_rate"`
	DeltaR            decimal.Decimal `json:"delta_r"`
	DirectRecruitRate decimal.Decimal `json:"direct_recruit_rate"`

	// Retention context. StdRetentionDefined is false in the first two tenure
	// months, when no standard is set yet.
	StdRetention        int             `json:"std_retention"`
	StdRetentionDefined bool            `json:"std_retention_defined"`
	Retention1st        int             `json:"retention_1st"`
	Factor1st           decimal.Decimal `json:"factor_1st"`
	Factor13th          decimal.Decimal `json:"factor_13th"`
	Factor25th          decimal.Decimal `json:"factor_25th"`

	// Aggregate fees.
	SumRecruit        decimal.Decimal `json:"sum_recruit"`
	SumPerf1          decimal.Decimal `json:"sum_perf1"`
	SumInit2          decimal.Decimal `json:"sum_init2_1"`
	SumStrategicBonus int64           `json:"sum_sh_bonus"`

	// Settlement guarantee.
	BaseCompensation    decimal.Decimal `json:"base_compensation"`
	BaseCompAfterRefund decimal.Decimal `json:"base_comp_after_refund"`
	BaseGuarantee       decimal.Decimal `json:"base_guarantee"`
	GuaranteeAddOn      decimal.Decimal `json:"guarantee_add_on"`
	FinalGuarantee      decimal.Decimal `json:"final_guarantee"`
	SettleBonus         decimal.Decimal `json:"settle_bonus"`

	// GuaranteeWindowOpen is true while tenure is within the first 12 months;
	// renderers hide the guarantee line entirely once the window closes.
	GuaranteeWindowOpen bool `json:"guarantee_window_open"`

	NextMonthTotal decimal.Decimal `json:"next_month_total"`

	// Eligibility outcomes with enumerated failure reasons.
	Init2Eligible  bool         `json:"init2_eligible"`
	Init2Reasons   []ReasonCode `json:"init2_reasons,omitempty"`
	SettleEligible bool         `json:"settle_eligible"`
	SettleReasons  []ReasonCode `json:"settle_reasons,omitempty"`

	Entries []EntryResult `json:"entries"`
}
