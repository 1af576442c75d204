package transaction

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingItem is a manually entered transaction waiting to be uploaded.
type PendingItem struct {
	ID          uuid.UUID
	Transaction Transaction
}

// Pending is the in-memory working list of a manual-entry session.
// Nothing in it outlives the process.
type Pending struct {
	mu    sync.Mutex
	items []PendingItem
}

func NewPending() *Pending {
	return &Pending{}
}

// Add appends tx and returns the ID it can later be removed by.
func (p *Pending) Add(tx Transaction) uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := uuid.New()
	p.items = append(p.items, PendingItem{ID: id, Transaction: tx})

	return id
}

// Remove drops the item with the given ID and reports whether it existed.
func (p *Pending) Remove(id uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := slices.IndexFunc(p.items, func(it PendingItem) bool { return it.ID == id })
	if idx < 0 {
		return false
	}

	p.items = slices.Delete(p.items, idx, idx+1)

	return true
}

// Items returns a snapshot of the list in insertion order.
func (p *Pending) Items() []PendingItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.items)
}

// Transactions returns the pending transactions in insertion order.
func (p *Pending) Transactions() []Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()

	txs := make([]Transaction, len(p.items))
	for i, it := range p.items {
		txs[i] = it.Transaction
	}

	return txs
}

func (p *Pending) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.items)
}

func (p *Pending) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.items = nil
}

// Total sums the pending amounts without float drift.
func (p *Pending) Total() decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := decimal.Zero
	for _, it := range p.items {
		total = total.Add(decimal.NewFromFloat(it.Transaction.AmountKRW))
	}

	return total
}
