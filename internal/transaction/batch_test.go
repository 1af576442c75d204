package transaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/student-spending/spendboard/internal/transaction"
)

func TestValidateBatch(t *testing.T) {
	type testCase struct {
		name          string
		records       []transaction.Record
		wantValid     int
		wantRows      []int
		wantMerchants []string
	}

	tests := []testCase{
		{
			name:      "Empty input",
			records:   nil,
			wantValid: 0,
			wantRows:  []int{},
		},
		{
			name:          "All valid",
			records:       []transaction.Record{validRecord(), with("merchant", "Bakery")},
			wantValid:     2,
			wantRows:      []int{},
			wantMerchants: []string{"Cafe", "Bakery"},
		},
		{
			name: "Rows keep original positions",
			records: []transaction.Record{
				without("merchant"),
				with("merchant", "A"),
				with("amount_krw", 0.0),
				with("merchant", "B"),
				with("date", "2024-1-5"),
			},
			wantValid:     2,
			wantRows:      []int{1, 3, 5},
			wantMerchants: []string{"A", "B"},
		},
		{
			name:      "All invalid",
			records:   []transaction.Record{{}, {}, {}},
			wantValid: 0,
			wantRows:  []int{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transaction.ValidateBatch(tt.records)

			assert.Equal(t, len(tt.records), len(got.Valid)+len(got.Invalid))
			assert.Len(t, got.Valid, tt.wantValid)

			rows := make([]int, 0, len(got.Invalid))
			for _, inv := range got.Invalid {
				rows = append(rows, inv.Row)
				assert.NotEmpty(t, inv.Errors)
				assert.Equal(t, tt.records[inv.Row-1], inv.Data)
			}

			assert.Equal(t, tt.wantRows, rows)

			if tt.wantMerchants != nil {
				merchants := make([]string, 0, len(got.Valid))
				for _, tx := range got.Valid {
					merchants = append(merchants, tx.Merchant)
				}

				assert.Equal(t, tt.wantMerchants, merchants)
			}
		})
	}
}

func TestValidateBatch_Deterministic(t *testing.T) {
	records := []transaction.Record{
		validRecord(),
		with("channel", "radio"),
		without("city"),
		with("amount_krw", 0.01),
	}

	first := transaction.ValidateBatch(records)
	second := transaction.ValidateBatch(records)

	require.Equal(t, first, second)
	assert.Equal(t, transaction.Summary{Total: 4, Valid: 2, Invalid: 2}, first.Summary())
}
