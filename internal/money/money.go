package money

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// KRW formats a won amount with thousands separators, e.g. "4,500원".
// Fractions, rare for won, keep two places.
func KRW(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	if d.IsInteger() {
		return humanize.Comma(d.IntPart()) + "원"
	}

	return humanize.FormatFloat("#,###.##", d.InexactFloat64()) + "원"
}

// KRWDecimal is KRW for exact totals.
func KRWDecimal(amount decimal.Decimal) string {
	return KRW(amount.InexactFloat64())
}
