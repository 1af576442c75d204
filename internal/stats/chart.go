package stats

import (
	"cmp"
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

// Bar is one category of a horizontal bar chart.
type Bar struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Share    float64 `json:"share"` // of the total, 0..1
	Width    int     `json:"-"`
}

// Bars orders categories by amount (largest first, then by name) and scales them so the
// largest fills width. Non-positive amounts are dropped.
func Bars(byCategory map[string]float64, width int) []Bar {
	total := Total(byCategory)
	bars := make([]Bar, 0, len(byCategory))

	var peak float64

	for category, amount := range byCategory {
		if amount <= 0 {
			continue
		}

		peak = math.Max(peak, amount)
		bars = append(bars, Bar{Category: category, Amount: amount})
	}

	slices.SortFunc(bars, func(a, b Bar) int {
		if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
			return c
		}

		return cmp.Compare(a.Category, b.Category)
	})

	for i := range bars {
		bars[i].Share = decimal.NewFromFloat(bars[i].Amount).Div(total).InexactFloat64()
		bars[i].Width = max(1, int(math.Round(bars[i].Amount/peak*float64(width))))
	}

	return bars
}

// Total sums the positive amounts exactly.
func Total(byCategory map[string]float64) decimal.Decimal {
	total := decimal.Zero

	for _, amount := range byCategory {
		if amount > 0 {
			total = total.Add(decimal.NewFromFloat(amount))
		}
	}

	return total
}
