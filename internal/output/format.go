package output

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount as whole won with thousands separators,
// truncating fractions the way the source figures are displayed.
func FormatCurrency(d decimal.Decimal) string {
	return groupDigits(d.IntPart()) + "원"
}

// FormatPoints renders a converted-premium amount in P units.
func FormatPoints(d decimal.Decimal) string {
	return groupDigits(d.IntPart()) + "P"
}

// FormatPercent renders a 0..1 rate as a truncated whole-number percentage.
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).Truncate(0).String() + "%"
}

func groupDigits(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
