package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifecomm/commission-calculator/internal/calculation"
	"github.com/lifecomm/commission-calculator/internal/domain"
	"github.com/lifecomm/commission-calculator/internal/master"
)

func sampleResult(t *testing.T) *domain.CalculationResult {
	t.Helper()
	table, err := master.Build([]master.Row{
		{Product: "종신보험A", Type: "기본형", PayYears: []string{"10년"}, Rates: master.RateTriple{
			Year1: decimal.NewFromInt(30), Year2: decimal.NewFromInt(10), Year3: decimal.NewFromInt(5),
		}},
		{Product: "건강보험B", Type: "표준형", PayYears: []string{"10년"}, Rates: master.RateTriple{
			Year1: decimal.NewFromInt(10), Year2: decimal.NewFromInt(5), Year3: decimal.NewFromInt(3),
		}, Strategic: true},
	})
	require.NoError(t, err)

	session := domain.NewSessionFromEntries([]domain.ContractEntry{
		{Product: "종신보험A", Type: "기본형", PayYear: "10년", Premium: 20_000_000},
		{Product: "건강보험B", Type: "표준형", PayYear: "10년", Premium: 60_000},
	})
	inputs := domain.PolicyInputs{
		CommissionYear:   2024,
		CommissionMonth:  11,
		StandardActivity: true,
		Retention1st:     90,
		Retention13th:    90,
		Retention25th:    85,
		DirectRecruits:   1,
	}
	now := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	return calculation.NewEngine().Calculate(session, inputs, now, table)
}

func TestConsoleReport(t *testing.T) {
	r := sampleResult(t)
	report := NewReportGenerator().ConsoleReport(r)

	assert.Contains(t, report, "당월 수수료 요약")
	assert.Contains(t, report, "익월 예상 수수료")
	assert.Contains(t, report, "유효환산보험료")
	assert.Contains(t, report, "직도입우대 5%p")
	assert.Contains(t, report, "[전략건강]")
	assert.Contains(t, report, "정착보장수수료 보장금액")
	assert.Contains(t, report, "총합")
	// Both entries appear with their year sections.
	assert.Contains(t, report, "종신보험A (기본형)")
	assert.Contains(t, report, "건강보험B (표준형)")
	assert.Contains(t, report, "3차년 수수료")
}

func TestConsoleReportHidesGuaranteeAfterWindow(t *testing.T) {
	r := sampleResult(t)
	r.GuaranteeWindowOpen = false
	report := NewReportGenerator().ConsoleReport(r)

	assert.NotContains(t, report, "정착보장수수료 보장금액")
	assert.NotContains(t, report, "정착보장 수수료:")
}

func TestConsoleReportReasons(t *testing.T) {
	r := sampleResult(t)
	r.SettleBonus = decimal.Zero
	r.SettleReasons = []domain.ReasonCode{
		domain.ReasonStandardActivityMissed,
		domain.ReasonRetentionBelowStandard,
	}
	r.Init2Eligible = false
	r.Init2Reasons = []domain.ReasonCode{domain.ReasonEffectiveUnder1M}

	report := NewReportGenerator().ConsoleReport(r)
	assert.Contains(t, report, "정착보장수수료 미산출 이유: 표준활동 미달성, 당월 유지율 기준 미달")
	assert.Contains(t, report, "초기정착수수료2 미산출 이유: 유효환산 100만원 미만")
}

func TestJSONReport(t *testing.T) {
	r := sampleResult(t)
	var buf bytes.Buffer
	require.NoError(t, NewReportGenerator().JSONReport(r, &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "effective_converted")
	assert.Contains(t, decoded, "next_month_total")
	assert.Contains(t, decoded, "entries")
}

func TestCSVReport(t *testing.T) {
	r := sampleResult(t)
	var buf bytes.Buffer
	require.NoError(t, NewReportGenerator().CSVReport(r, &buf))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	// Header, two entries, totals.
	require.Len(t, records, 4)
	assert.Equal(t, "product", records[0][0])
	assert.Equal(t, "종신보험A", records[1][0])
	assert.Equal(t, "TOTAL", records[3][0])
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	err := NewReportGenerator().Generate(sampleResult(t), "xml", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
