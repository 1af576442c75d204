package transaction_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/student-spending/spendboard/internal/transaction"
)

func validRecord() transaction.Record {
	return transaction.Record{
		"date":         "2024-01-05",
		"time":         "09:30",
		"merchant":     "Cafe",
		"memo":         "latte",
		"amount_krw":   4500.0,
		"payment_type": "credit_card",
		"city":         "Seoul",
		"channel":      "offline",
	}
}

func with(key string, value any) transaction.Record {
	rec := validRecord()
	rec[key] = value

	return rec
}

func without(key string) transaction.Record {
	rec := validRecord()
	delete(rec, key)

	return rec
}

func TestValidator_Validate(t *testing.T) {
	type args struct {
		rec transaction.Record
	}

	type testCase struct {
		name       string
		args       args
		wantErrors []string
		verify     func(t *testing.T, tx transaction.Transaction)
	}

	tests := []testCase{
		{
			name: "Complete record",
			args: args{rec: validRecord()},
			verify: func(t *testing.T, tx transaction.Transaction) {
				assert.Equal(t, transaction.Transaction{
					Date:        "2024-01-05",
					Time:        "09:30",
					Merchant:    "Cafe",
					Memo:        "latte",
					AmountKRW:   4500,
					PaymentType: transaction.PaymentCreditCard,
					City:        "Seoul",
					Channel:     transaction.ChannelOffline,
				}, tx)
			},
		},
		{
			name: "Memo defaults to empty",
			args: args{rec: without("memo")},
			verify: func(t *testing.T, tx transaction.Transaction) {
				assert.Equal(t, "", tx.Memo)
			},
		},
		{
			name: "Null memo defaults to empty",
			args: args{rec: with("memo", nil)},
			verify: func(t *testing.T, tx transaction.Transaction) {
				assert.Equal(t, "", tx.Memo)
			},
		},
		{
			name: "Extra fields are ignored",
			args: args{rec: with("category", "food")},
		},
		{
			name: "Smallest positive amount",
			args: args{rec: with("amount_krw", 0.01)},
			verify: func(t *testing.T, tx transaction.Transaction) {
				assert.Equal(t, 0.01, tx.AmountKRW)
			},
		},
		{
			name: "Integer amount",
			args: args{rec: with("amount_krw", 5000)},
			verify: func(t *testing.T, tx transaction.Transaction) {
				assert.Equal(t, 5000.0, tx.AmountKRW)
			},
		},
		{
			name: "JSON number amount",
			args: args{rec: with("amount_krw", json.Number("1200"))},
		},
		{
			name:       "JSON number out of range",
			args:       args{rec: with("amount_krw", json.Number("1e400"))},
			wantErrors: []string{"amount_krw: must be a finite number"},
		},
		{
			name:       "Missing merchant",
			args:       args{rec: without("merchant")},
			wantErrors: []string{"merchant: required"},
		},
		{
			name:       "Empty merchant",
			args:       args{rec: with("merchant", "")},
			wantErrors: []string{"merchant: must not be empty"},
		},
		{
			name:       "Zero amount",
			args:       args{rec: with("amount_krw", 0.0)},
			wantErrors: []string{"amount_krw: must be greater than 0"},
		},
		{
			name:       "Negative amount",
			args:       args{rec: with("amount_krw", -500.0)},
			wantErrors: []string{"amount_krw: must be greater than 0"},
		},
		{
			name:       "Numeric string amount is not coerced",
			args:       args{rec: with("amount_krw", "5000")},
			wantErrors: []string{"amount_krw: expected number, received string"},
		},
		{
			name:       "Missing amount",
			args:       args{rec: without("amount_krw")},
			wantErrors: []string{"amount_krw: required"},
		},
		{
			name:       "Date not zero padded",
			args:       args{rec: with("date", "2024-1-5")},
			wantErrors: []string{"date: must be a date in YYYY-MM-DD format"},
		},
		{
			name:       "Time with seconds",
			args:       args{rec: with("time", "09:30:00")},
			wantErrors: []string{"time: must be a time in HH:MM format"},
		},
		{
			name:       "Unknown payment type",
			args:       args{rec: with("payment_type", "bitcoin")},
			wantErrors: []string{"payment_type: must be one of credit_card, debit_card, transport_card, mobile_pay, cash"},
		},
		{
			name:       "Unknown channel",
			args:       args{rec: with("channel", "phone")},
			wantErrors: []string{"channel: must be one of offline, online, app, kiosk"},
		},
		{
			name:       "Wrong-typed memo",
			args:       args{rec: with("memo", 12.0)},
			wantErrors: []string{"memo: expected string, received number"},
		},
		{
			name:       "Boolean city",
			args:       args{rec: with("city", true)},
			wantErrors: []string{"city: expected string, received boolean"},
		},
		{
			name: "Every field reported in canonical order",
			args: args{rec: transaction.Record{
				"channel":    "fax",
				"amount_krw": -1.0,
				"date":       "yesterday",
			}},
			wantErrors: []string{
				"date: must be a date in YYYY-MM-DD format",
				"time: required",
				"merchant: required",
				"amount_krw: must be greater than 0",
				"payment_type: required",
				"city: required",
				"channel: must be one of offline, online, app, kiosk",
			},
		},
		{
			name: "Nil record",
			args: args{rec: nil},
			wantErrors: []string{
				"date: required",
				"time: required",
				"merchant: required",
				"amount_krw: required",
				"payment_type: required",
				"city: required",
				"channel: required",
			},
		},
	}

	v := transaction.NewValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(tt.args.rec)

			if tt.wantErrors != nil {
				invalid, ok := got.(transaction.Invalid)
				require.True(t, ok, "expected Invalid, got %#v", got)
				assert.Equal(t, tt.wantErrors, invalid.Errors)

				return
			}

			valid, ok := got.(transaction.Valid)
			require.True(t, ok, "expected Valid, got %#v", got)

			if tt.verify != nil {
				tt.verify(t, valid.Transaction)
			}
		})
	}
}

func TestValidate_DefaultValidator(t *testing.T) {
	got := transaction.Validate(validRecord())
	assert.IsType(t, transaction.Valid{}, got)
}

func TestTransaction_ToRecordRoundTrip(t *testing.T) {
	v := transaction.NewValidator()

	first, ok := v.Validate(validRecord()).(transaction.Valid)
	require.True(t, ok)

	second, ok := v.Validate(first.Transaction.ToRecord()).(transaction.Valid)
	require.True(t, ok)

	assert.Equal(t, first.Transaction, second.Transaction)
}
