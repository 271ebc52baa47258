package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifecomm/commission-calculator/internal/domain"
)

const sampleScenario = `commission_year: 2025
commission_month: 3
standard_activity: true
retention_1st: 93
retention_13th: 90
retention_25th: 85
refund_performance: 100000
refund_amount: 0
direct_recruits: 1
entries:
  - product: 종신보험A
    type: 기본형
    pay_year: 10년
    premium: 1000000
  - product: 건강보험B
    type: 표준형
    pay_year: 10년
    premium: 60000
`

func TestParseScenario(t *testing.T) {
	scenario, err := NewInputParser().Parse([]byte(sampleScenario))
	require.NoError(t, err)

	assert.Equal(t, 2025, scenario.CommissionYear)
	assert.Equal(t, 3, scenario.CommissionMonth)
	assert.True(t, scenario.StandardActivity)
	assert.Equal(t, 1, scenario.DirectRecruits)
	assert.True(t, scenario.RefundPerformance.Equal(decimal.NewFromInt(100_000)))
	require.Len(t, scenario.Entries, 2)
	assert.Equal(t, "종신보험A", scenario.Entries[0].Product)
	assert.Equal(t, int64(60_000), scenario.Entries[1].Premium)
}

func TestParseClampsInputs(t *testing.T) {
	data := `commission_year: 2025
commission_month: 8
retention_1st: 150
retention_13th: 10
retention_25th: 101
refund_performance: -500
direct_recruits: 500
entries:
  - product: 상품
    premium: -100
`
	scenario, err := NewInputParser().Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, 100, scenario.Retention1st)
	assert.Equal(t, 50, scenario.Retention13th)
	assert.Equal(t, 100, scenario.Retention25th)
	assert.Equal(t, 99, scenario.DirectRecruits)
	assert.True(t, scenario.RefundPerformance.IsZero())
	assert.Equal(t, int64(0), scenario.Entries[0].Premium)
}

func TestValidateDelegationMonth(t *testing.T) {
	parser := NewInputParser()
	now := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		year    int
		month   int
		wantErr string
	}{
		{"valid", 2024, 11, ""},
		{"year too old", 1988, 5, "commission_year"},
		{"year in the future", 2026, 1, "commission_year"},
		{"month zero", 2024, 0, "commission_month"},
		{"month thirteen", 2024, 13, "commission_month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &domain.Scenario{}
			s.CommissionYear = tt.year
			s.CommissionMonth = tt.month
			err := parser.Validate(s, now)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateRequiresProduct(t *testing.T) {
	s := &domain.Scenario{Entries: []domain.ContractEntry{{Premium: 1000}}}
	s.CommissionYear = 2025
	s.CommissionMonth = 1
	err := NewInputParser().Validate(s, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product is required")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScenario), 0o644))

	scenario, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Len(t, scenario.Entries, 2)

	_, err = NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
