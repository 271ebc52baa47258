package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lifecomm/commission-calculator/internal/domain"
)

// reasonText maps reason codes to the display strings the summary prints.
var reasonText = map[domain.ReasonCode]string{
	domain.ReasonGuaranteeBandNotReached: "유효환산 구간 미달",
	domain.ReasonStandardActivityMissed:  "표준활동 미달성",
	domain.ReasonRetentionBelowStandard:  "당월 유지율 기준 미달",
	domain.ReasonTenureBeyond12:          "위임 13차월 이상",
	domain.ReasonEffectiveUnder1M:        "유효환산 100만원 미만",
	domain.ReasonMaxRateReached:          "성과수수료 최대 지급률 달성 상태",
}

// ReasonText returns the display string for a reason code.
func ReasonText(code domain.ReasonCode) string {
	if s, ok := reasonText[code]; ok {
		return s
	}
	return string(code)
}

// ReportGenerator renders a calculation result in the supported formats.
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// Generate writes the result to w in the requested format.
func (rg *ReportGenerator) Generate(result *domain.CalculationResult, format string, w io.Writer) error {
	switch format {
	case "console":
		_, err := io.WriteString(w, rg.ConsoleReport(result))
		return err
	case "json":
		return rg.JSONReport(result, w)
	case "csv":
		return rg.CSVReport(result, w)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// ConsoleReport renders the two summary blocks and the per-entry breakdown the
// way the agent-facing form presents them.
func (rg *ReportGenerator) ConsoleReport(r *domain.CalculationResult) string {
	var b strings.Builder

	b.WriteString("당월 수수료 요약\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "당월환산보험료:    %s\n", FormatPoints(r.TotalConvertedRaw))
	fmt.Fprintf(&b, "당월 예상 환수성적: %s\n", FormatPoints(r.RefundPerformance))
	fmt.Fprintf(&b, "유효환산보험료:    %s\n", FormatPoints(r.EffectiveConverted))
	fmt.Fprintf(&b, "기준 유지율:      %s\n", stdRetentionText(r))
	fmt.Fprintf(&b, "현재 유지율:      %d%%\n", r.Retention1st)
	fmt.Fprintf(&b, "성과수수료 지급률:  %s%s\n", FormatPercent(r.BaseRate.Mul(r.Factor1st)), perfRateCaption(r))
	if r.GuaranteeWindowOpen {
		if r.GuaranteeAddOn.IsPositive() {
			fmt.Fprintf(&b, "정착보장수수료 보장금액: %s (직도입 +%s)\n",
				FormatCurrency(r.FinalGuarantee), FormatCurrency(r.GuaranteeAddOn))
		} else {
			fmt.Fprintf(&b, "정착보장수수료 보장금액: %s\n", FormatCurrency(r.FinalGuarantee))
		}
	}

	if r.GuaranteeWindowOpen && r.SettleBonus.IsZero() && len(r.SettleReasons) > 0 {
		fmt.Fprintf(&b, "＊ 정착보장수수료 미산출 이유: %s\n", joinReasons(r.SettleReasons))
	}
	if !r.Init2Eligible && len(r.Init2Reasons) > 0 {
		fmt.Fprintf(&b, "＊ 초기정착수수료2 미산출 이유: %s\n", joinReasons(r.Init2Reasons))
	}

	b.WriteString("\n익월 예상 수수료\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "모집수수료:       %s\n", FormatCurrency(r.SumRecruit))
	fmt.Fprintf(&b, "성과수수료1:      %s\n", FormatCurrency(r.SumPerf1))
	fmt.Fprintf(&b, "초기정착수수료2-1: %s\n", FormatCurrency(r.SumInit2))
	fmt.Fprintf(&b, "전략건강 보너스:   %s\n", FormatCurrency(decimal.NewFromInt(r.SumStrategicBonus)))
	if r.GuaranteeWindowOpen {
		fmt.Fprintf(&b, "정착보장 수수료:   %s\n", FormatCurrency(r.SettleBonus))
	}
	fmt.Fprintf(&b, "총합:            %s\n", FormatCurrency(r.NextMonthTotal))

	for _, er := range r.Entries {
		b.WriteString("\n" + strings.Repeat("-", 50) + "\n")
		tag := ""
		if er.Strategic {
			tag = " [전략건강]"
		}
		fmt.Fprintf(&b, "%s (%s)%s\n", er.Entry.Product, er.Entry.Type, tag)
		fmt.Fprintf(&b, "월초 보험료: %s / 납입년도: %s\n",
			FormatCurrency(decimal.NewFromInt(er.Entry.Premium)), er.Entry.PayYear)

		b.WriteString("1차년(익월) 수수료\n")
		fmt.Fprintf(&b, "  모집수수료:       %s\n", FormatCurrency(er.RecruitFee))
		fmt.Fprintf(&b, "  성과수수료1:      %s\n", FormatCurrency(er.Perf1))
		fmt.Fprintf(&b, "  초기정착수수료2-1: %s\n", FormatCurrency(er.Init2Year1))
		if er.StrategicBonus > 0 {
			fmt.Fprintf(&b, "  전략건강 보너스:   %s\n", FormatCurrency(decimal.NewFromInt(er.StrategicBonus)))
		}

		b.WriteString("2차년 수수료\n")
		fmt.Fprintf(&b, "  유지수수료1 (13~24회차 납입시): %s\n", FormatCurrency(er.Maintenance1))
		fmt.Fprintf(&b, "  성과수수료2:      %s\n", FormatCurrency(er.Perf2))
		fmt.Fprintf(&b, "  초기정착수수료2-2: %s\n", FormatCurrency(er.Init2Year2))

		b.WriteString("3차년 수수료\n")
		fmt.Fprintf(&b, "  유지수수료2 (25~36회차 납입시): %s\n", FormatCurrency(er.Maintenance2))
		fmt.Fprintf(&b, "  성과수수료3:      %s\n", FormatCurrency(er.Perf3))
		fmt.Fprintf(&b, "  초기정착수수료2-3: %s\n", FormatCurrency(er.Init2Year3))
	}

	return b.String()
}

// JSONReport marshals the full result structure.
func (rg *ReportGenerator) JSONReport(r *domain.CalculationResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// CSVReport writes one row per entry followed by a totals row.
func (rg *ReportGenerator) CSVReport(r *domain.CalculationResult, w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{
		"product", "type", "pay_year", "premium",
		"converted_y1", "recruit_fee", "perf1", "init2_1", "sh_bonus",
		"perf2", "init2_2", "maintenance1",
		"perf3", "init2_3", "maintenance2",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, er := range r.Entries {
		row := []string{
			er.Entry.Product, er.Entry.Type, er.Entry.PayYear,
			strconv.FormatInt(er.Entry.Premium, 10),
			er.ConvertedYear1.StringFixed(0),
			er.RecruitFee.StringFixed(0),
			er.Perf1.StringFixed(0),
			er.Init2Year1.StringFixed(0),
			strconv.FormatInt(er.StrategicBonus, 10),
			er.Perf2.StringFixed(0),
			er.Init2Year2.StringFixed(0),
			er.Maintenance1.StringFixed(0),
			er.Perf3.StringFixed(0),
			er.Init2Year3.StringFixed(0),
			er.Maintenance2.StringFixed(0),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	totals := []string{
		"TOTAL", "", "", "",
		r.TotalConvertedRaw.StringFixed(0),
		r.SumRecruit.StringFixed(0),
		r.SumPerf1.StringFixed(0),
		r.SumInit2.StringFixed(0),
		strconv.FormatInt(r.SumStrategicBonus, 10),
		"", "", "", "", "", "",
	}
	if err := cw.Write(totals); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func stdRetentionText(r *domain.CalculationResult) string {
	if !r.StdRetentionDefined {
		return "해당사항없음"
	}
	return strconv.Itoa(r.StdRetention) + "%"
}

// perfRateCaption explains how the displayed payout rate was composed, matching
// the summary captions the agents are used to.
func perfRateCaption(r *domain.CalculationResult) string {
	if !r.BaseRate.IsPositive() {
		return ""
	}
	var parts []string
	penalized := !r.Factor1st.Equal(decimal.NewFromInt(1))
	if penalized {
		parts = append(parts, fmt.Sprintf("지급률 %s × 유지율 가감 %s",
			FormatPercent(r.BaseRate), FormatPercent(r.Factor1st)))
	}
	if r.DirectRecruitRate.IsPositive() {
		uplift := FormatPercent(r.DirectRecruitRate) + "p"
		if penalized {
			parts = append(parts, "+ 직도입우대 "+uplift)
		} else {
			parts = append(parts, fmt.Sprintf("지급률 %s + 직도입우대 %s", FormatPercent(r.BaseRate), uplift))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " ( * " + strings.Join(parts, " ") + " )"
}

func joinReasons(codes []domain.ReasonCode) string {
	texts := make([]string, len(codes))
	for i, c := range codes {
		texts[i] = ReasonText(c)
	}
	return strings.Join(texts, ", ")
}
