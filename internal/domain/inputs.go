package domain

import (
	"github.com/shopspring/decimal"
)

// PolicyInputs carries the scalar inputs for one calculation: the agent's
// delegation month, the standard-activity flag, the three retention
// percentages, the expected refund figures and the direct-recruit headcount.
type PolicyInputs struct {
	CommissionYear   int  `yaml:"commission_year" json:"commission_year"`
	CommissionMonth  int  `yaml:"commission_month" json:"commission_month"`
	StandardActivity bool `yaml:"standard_activity" json:"standard_activity"`

	// Retention percentages: current month, expected at the 13th installment,
	// expected at the 25th installment.
	Retention1st  int `yaml:"retention_1st" json:"retention_1st"`
	Retention13th int `yaml:"retention_13th" json:"retention_13th"`
	Retention25th int `yaml:"retention_25th" json:"retention_25th"`

	// RefundPerformance is the expected clawback performance (P amount)
	// subtracted from the converted premium; RefundAmount is the expected
	// clawback in won subtracted from base compensation.
	RefundPerformance decimal.Decimal `yaml:"refund_performance" json:"refund_performance"`
	RefundAmount      decimal.Decimal `yaml:"refund_amount" json:"refund_amount"`

	DirectRecruits int `yaml:"direct_recruits" json:"direct_recruits"`
}

// Clamp normalizes the inputs to the ranges the engine assumes. The current-month
// retention slider runs 0..100; the 13th/25th sliders are floored at 50 like the
// original form. Refunds and recruit counts never go negative; recruits cap at 99.
func (p *PolicyInputs) Clamp() {
	p.Retention1st = clampInt(p.Retention1st, 0, 100)
	p.Retention13th = clampInt(p.Retention13th, 50, 100)
	p.Retention25th = clampInt(p.Retention25th, 50, 100)
	p.DirectRecruits = clampInt(p.DirectRecruits, 0, 99)
	if p.RefundPerformance.IsNegative() {
		p.RefundPerformance = decimal.Zero
	}
	if p.RefundAmount.IsNegative() {
		p.RefundAmount = decimal.Zero
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Scenario is a complete calculation input file: policy inputs plus the entry
// list. It is what `comcalc calculate` reads from YAML.
type Scenario struct {
	PolicyInputs `yaml:",inline" json:"policy_inputs"`
	Entries      []ContractEntry `yaml:"entries" json:"entries"`
}
