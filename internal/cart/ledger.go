package cart

// Ledger tracks, per product id, how many units remain reservable
// beyond what is currently held in a cart. A missing entry means the
// product has never been referenced and is distinct from an explicit
// zero, which means every known unit is reserved.
type Ledger struct {
	stocks map[string]int
}

func NewLedger() *Ledger {
	return &Ledger{stocks: make(map[string]int)}
}

// Stock returns the remaining reservable quantity, or 0 when the
// product has no entry yet. Callers that need to distinguish the two
// cases use Has.
func (l *Ledger) Stock(productID string) int {
	return l.stocks[productID]
}

// Has reports whether an entry exists for the product.
func (l *Ledger) Has(productID string) bool {
	_, ok := l.stocks[productID]
	return ok
}

// SetStock unconditionally overwrites the entry. The value is not
// validated here; reservation accounting in Service is the only
// production caller and keeps it non-negative.
func (l *Ledger) SetStock(productID string, stock int) {
	l.stocks[productID] = stock
}

// Snapshot returns a copy of the ledger contents for serialization.
func (l *Ledger) Snapshot() map[string]int {
	out := make(map[string]int, len(l.stocks))
	for id, n := range l.stocks {
		out[id] = n
	}
	return out
}

// Restore replaces the ledger contents with the given map. A nil map
// resets the ledger to empty.
func (l *Ledger) Restore(stocks map[string]int) {
	l.stocks = make(map[string]int, len(stocks))
	for id, n := range stocks {
		l.stocks[id] = n
	}
}
