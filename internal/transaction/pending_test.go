package transaction_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/student-spending/spendboard/internal/transaction"
)

func pendingTx(merchant string, amount float64) transaction.Transaction {
	return transaction.Transaction{
		Date:        "2024-03-02",
		Time:        "12:00",
		Merchant:    merchant,
		AmountKRW:   amount,
		PaymentType: transaction.PaymentCash,
		City:        "Busan",
		Channel:     transaction.ChannelKiosk,
	}
}

func TestPending_AddRemove(t *testing.T) {
	p := transaction.NewPending()

	first := p.Add(pendingTx("Lunch", 8000))
	second := p.Add(pendingTx("Bus", 1450))
	p.Add(pendingTx("Snack", 0.1))

	require.Equal(t, 3, p.Len())

	assert.True(t, p.Remove(second))
	assert.False(t, p.Remove(second))
	assert.False(t, p.Remove(uuid.New()))

	items := p.Items()
	require.Len(t, items, 2)
	assert.Equal(t, first, items[0].ID)
	assert.Equal(t, "Snack", items[1].Transaction.Merchant)

	txs := p.Transactions()
	assert.Equal(t, []string{"Lunch", "Snack"}, []string{txs[0].Merchant, txs[1].Merchant})
}

func TestPending_Total(t *testing.T) {
	p := transaction.NewPending()
	assert.True(t, p.Total().Equal(decimal.Zero))

	p.Add(pendingTx("A", 0.1))
	p.Add(pendingTx("B", 0.2))
	p.Add(pendingTx("C", 4500))

	assert.Equal(t, "4500.3", p.Total().String())
}

func TestPending_Clear(t *testing.T) {
	p := transaction.NewPending()
	p.Add(pendingTx("A", 1))

	items := p.Items()
	p.Clear()

	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.Transactions())
	assert.Len(t, items, 1, "snapshots are not affected by Clear")
}
