package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStrategicCount(t *testing.T) {
	tests := []struct {
		premium int64
		want    float64
	}{
		{29_999, 0},
		{30_000, 0.5},
		{49_999, 0.5},
		{50_000, 1},
		{200_000, 1},
	}
	for _, tt := range tests {
		got := StrategicCount(tt.premium)
		assert.True(t, got.Equal(decimal.NewFromFloat(tt.want)),
			"premium %d: want %v, got %s", tt.premium, tt.want, got)
	}
}

func TestUnitBonus(t *testing.T) {
	tests := []struct {
		count float64
		want  int64
	}{
		{0, 0},
		{0.5, 0},
		{1, 50_000},
		{1.5, 50_000},
		{2, 55_000},
		{2.5, 55_000},
		{3, 60_000},
		{4.5, 60_000},
		{5, 70_000},
		{9, 70_000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UnitBonus(decimal.NewFromFloat(tt.count)), "count %v", tt.count)
	}
}

func TestEntryBonusFloors(t *testing.T) {
	// A half count at the 50,000 unit pays 25,000; fractions floor.
	assert.Equal(t, int64(25_000), EntryBonus(decimal.NewFromFloat(0.5), 50_000))
	assert.Equal(t, int64(27_500), EntryBonus(decimal.NewFromFloat(0.5), 55_000))
	assert.Equal(t, int64(50_000), EntryBonus(decimal.NewFromInt(1), 50_000))
	assert.Equal(t, int64(0), EntryBonus(decimal.Zero, 70_000))
}
