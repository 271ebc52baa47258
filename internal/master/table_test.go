package master

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rates(r1, r2, r3 int64) RateTriple {
	return RateTriple{
		Year1: decimal.NewFromInt(r1),
		Year2: decimal.NewFromInt(r2),
		Year3: decimal.NewFromInt(r3),
	}
}

func TestSplitPayYears(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"10년", []string{"10년"}},
		{"5년,10년", []string{"5년", "10년"}},
		{"5년/10년/20년", []string{"5년", "10년", "20년"}},
		{"5년 10년", []string{"5년", "10년"}},
		{" 5년, 10년 ", []string{"5년", "10년"}},
		{"", []string{"기타"}},
		{"   ", []string{"기타"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitPayYears(tt.raw), "raw %q", tt.raw)
	}
}

func TestStrategicFlag(t *testing.T) {
	for _, truthy := range []string{"Y", "y", "YES", "yes", "1", "TRUE", "true", " Y "} {
		assert.True(t, StrategicFlag(truthy), "token %q", truthy)
	}
	for _, falsy := range []string{"", "N", "NO", "0", "FALSE", "2", "아니오"} {
		assert.False(t, StrategicFlag(falsy), "token %q", falsy)
	}
}

func TestBuildLookup(t *testing.T) {
	table, err := Build([]Row{
		{Product: "종신보험A", Type: "기본형", PayYears: []string{"10년", "20년"}, Rates: rates(30, 10, 5)},
		{Product: "건강보험B", Type: "표준형", PayYears: []string{"10년"}, Rates: rates(10, 5, 3), Strategic: true},
	})
	require.NoError(t, err)

	got := table.Lookup("종신보험A", "기본형", "20년")
	assert.True(t, got.Year1.Equal(decimal.NewFromInt(30)))
	assert.True(t, got.Year3.Equal(decimal.NewFromInt(5)))

	// Absent keys return a zero triple, no error.
	assert.True(t, table.Lookup("없는상품", "기본형", "10년").IsZero())
	assert.True(t, table.Lookup("종신보험A", "없는유형", "10년").IsZero())
	assert.True(t, table.Lookup("종신보험A", "기본형", "99년").IsZero())

	assert.True(t, table.IsStrategic("건강보험B"))
	assert.False(t, table.IsStrategic("종신보험A"))
	assert.Equal(t, []string{"건강보험B"}, table.StrategicProducts())
}

func TestBuildLastWriteWins(t *testing.T) {
	table, err := Build([]Row{
		{Product: "상품", Type: "유형", PayYears: []string{"10년"}, Rates: rates(10, 5, 3)},
		{Product: "상품", Type: "유형", PayYears: []string{"10년"}, Rates: rates(20, 8, 4)},
	})
	require.NoError(t, err)

	got := table.Lookup("상품", "유형", "10년")
	assert.True(t, got.Year1.Equal(decimal.NewFromInt(20)))
	// The label is not duplicated.
	assert.Equal(t, []string{"10년"}, table.PayYears("상품", "유형"))
}

// Labels sort by length first, then lexicographically, so "5년" comes before
// "10년" without numeric parsing.
func TestPayYearOrder(t *testing.T) {
	table, err := Build([]Row{
		{Product: "상품", Type: "유형", PayYears: []string{"20년", "5년", "10년", "100세"}, Rates: rates(10, 5, 3)},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"5년", "10년", "20년", "100세"}, table.PayYears("상품", "유형"))
}

func TestPayYearOrderCountsCharacters(t *testing.T) {
	// "기타" is two characters but six bytes; it still ranks ahead of the
	// three-character "10년".
	table, err := Build([]Row{
		{Product: "상품", Type: "유형", PayYears: []string{"10년", "기타", "5년"}, Rates: rates(10, 5, 3)},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"5년", "기타", "10년"}, table.PayYears("상품", "유형"))
}

func TestBuildRejectsIncompleteRows(t *testing.T) {
	_, err := Build([]Row{
		{Product: "", Type: "유형", PayYears: []string{"10년"}, Rates: rates(10, 5, 3)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMasterInvalid)

	_, err = Build(nil)
	assert.ErrorIs(t, err, ErrMasterInvalid)
}

func TestProductsAndTypesSorted(t *testing.T) {
	table, err := Build([]Row{
		{Product: "나상품", Type: "을형", PayYears: []string{"10년"}, Rates: rates(10, 5, 3)},
		{Product: "가상품", Type: "갑형", PayYears: []string{"10년"}, Rates: rates(10, 5, 3)},
		{Product: "나상품", Type: "갑형", PayYears: []string{"10년"}, Rates: rates(10, 5, 3)},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"가상품", "나상품"}, table.Products())
	assert.Equal(t, []string{"갑형", "을형"}, table.Types("나상품"))
	assert.Nil(t, table.Types("없는상품"))
	assert.Equal(t, 3, table.Len())
}
