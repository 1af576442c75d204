package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/student-spending/spendboard/internal/transaction"
)

func TestEntryForm_Record(t *testing.T) {
	form := entryForm{
		Date:        "2024-03-02",
		Time:        "12:30",
		Merchant:    " 김밥천국 ",
		Amount:      "6,500",
		PaymentType: "debit_card",
		City:        "Seoul",
		Channel:     "offline",
	}

	rec := form.record()
	assert.Equal(t, 6500.0, rec[transaction.FieldAmountKRW])
	assert.Equal(t, "김밥천국", rec[transaction.FieldMerchant])
	assert.NotContains(t, rec, transaction.FieldMemo)

	valid, ok := transaction.Validate(rec).(transaction.Valid)
	require.True(t, ok)
	assert.Equal(t, transaction.PaymentDebitCard, valid.Transaction.PaymentType)
}

func TestEntryForm_Record_BadAmount(t *testing.T) {
	form := entryForm{
		Date:        "2024-03-02",
		Time:        "12:30",
		Merchant:    "Cafe",
		Amount:      "five thousand",
		PaymentType: "cash",
		City:        "Seoul",
		Channel:     "kiosk",
	}

	invalid, ok := transaction.Validate(form.record()).(transaction.Invalid)
	require.True(t, ok)
	assert.Equal(t, []string{"amount_krw: expected number, received string"}, invalid.Errors)
}
