package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/student-spending/spendboard/internal/money"
)

func TestKRW(t *testing.T) {
	tests := map[float64]string{
		0:         "0원",
		4500:      "4,500원",
		1450:      "1,450원",
		1234567:   "1,234,567원",
		4500.5:    "4,500.50원",
		-3000:     "-3,000원",
		0.1 + 0.2: "0.30원",
	}

	for in, want := range tests {
		assert.Equal(t, want, money.KRW(in), "KRW(%v)", in)
	}
}

func TestKRWDecimal(t *testing.T) {
	assert.Equal(t, "4,500.30원", money.KRWDecimal(decimal.RequireFromString("4500.3")))
}
