package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/devaraji08/HarvestHubFinal/internal/domain"
	"github.com/devaraji08/HarvestHubFinal/internal/store"
)

const (
	// DefaultCartKey and DefaultStockKey are the storage keys used when
	// a service is not namespaced by session.
	DefaultCartKey  = "cart"
	DefaultStockKey = "product_stocks"
)

// Service holds the in-session cart lines together with the stock
// ledger and keeps the two consistent: every quantity added to the
// cart is subtracted from the ledger and returned on removal. The
// ledger is seeded from the product snapshot's stock the first time a
// product is referenced.
//
// Mutating operations never return an error. Insufficient stock is a
// silent no-op: the server-side backend stays authoritative and this
// accounting only blocks obviously wrong actions within one session.
// Both structures are written through to the store after every
// mutation; a failed write is logged and the in-memory state stands.
type Service struct {
	mu       sync.Mutex
	store    store.Store
	logger   zerolog.Logger
	cartKey  string
	stockKey string

	lines  []domain.CartLine
	ledger *Ledger
}

// NewService loads any persisted cart and ledger state from the store
// and returns a ready service. Missing keys start empty; a corrupted
// blob is discarded and logged, never surfaced.
func NewService(ctx context.Context, st store.Store, logger zerolog.Logger) *Service {
	return NewServiceWithKeys(ctx, st, logger, DefaultCartKey, DefaultStockKey)
}

// NewServiceWithKeys is NewService with explicit storage keys, used to
// namespace carts per session.
func NewServiceWithKeys(ctx context.Context, st store.Store, logger zerolog.Logger, cartKey, stockKey string) *Service {
	s := &Service{
		store:    st,
		logger:   logger,
		cartKey:  cartKey,
		stockKey: stockKey,
		ledger:   NewLedger(),
	}
	s.load(ctx)
	return s
}

// AddToCart reserves quantity units of the product and adds them to
// the cart, merging into an existing line for the same product id.
// The operation is silently rejected when fewer units remain
// reservable than the line would need in total.
func (s *Service) AddToCart(p domain.Product, quantity int) {
	if quantity <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	available := p.Stock
	if s.ledger.Has(p.ID) {
		available = s.ledger.Stock(p.ID)
	}
	if available < quantity {
		return
	}

	if i := s.lineIndex(p.ID); i >= 0 {
		merged := s.lines[i].Quantity + quantity
		if available < merged {
			return
		}
		s.lines[i].Quantity = merged
	} else {
		s.lines = append(s.lines, domain.CartLine{Product: p, Quantity: quantity})
	}

	s.ledger.SetStock(p.ID, available-quantity)
	s.persist()
}

// RemoveFromCart deletes the line for the product and returns its full
// quantity to the ledger. No-op when the product is not in the cart.
func (s *Service) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removeLine(productID) {
		s.persist()
	}
}

// UpdateQuantity sets the line's quantity to the given value. A value
// of zero or below removes the line. Increases that exceed the
// remaining reservable stock are silently rejected; decreases return
// the difference to the ledger.
func (s *Service) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		if s.removeLine(productID) {
			s.persist()
		}
		return
	}

	i := s.lineIndex(productID)
	if i < 0 {
		return
	}

	delta := quantity - s.lines[i].Quantity
	if delta > 0 && s.ledger.Stock(productID) < delta {
		return
	}

	s.ledger.SetStock(productID, s.ledger.Stock(productID)-delta)
	s.lines[i].Quantity = quantity
	s.persist()
}

// Clear empties the cart, returning every line's quantity to the
// ledger. Ledger entries themselves are kept.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.lines {
		s.ledger.SetStock(line.ID, s.ledger.Stock(line.ID)+line.Quantity)
	}
	s.lines = nil
	s.persist()
}

// Items returns a copy of the cart lines in insertion order.
func (s *Service) Items() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItems returns the sum of all line quantities.
func (s *Service) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice returns the sum of price times quantity over all lines.
func (s *Service) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// ProductStock returns the ledger's remaining reservable quantity for
// the product, or 0 when the product has never been referenced.
func (s *Service) ProductStock(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Stock(productID)
}

// AvailableStock returns how many units of the product could still be
// reserved: the ledger entry when one exists, otherwise the snapshot's
// own stock. This is the same availability rule AddToCart applies.
func (s *Service) AvailableStock(p domain.Product) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ledger.Has(p.ID) {
		return s.ledger.Stock(p.ID)
	}
	return p.Stock
}

// SetProductStock overwrites the ledger entry for the product. Not a
// replenishment API; exists for callers that sync the ledger with a
// fresh catalog read.
func (s *Service) SetProductStock(productID string, stock int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.SetStock(productID, stock)
	s.persist()
}

func (s *Service) lineIndex(productID string) int {
	for i := range s.lines {
		if s.lines[i].ID == productID {
			return i
		}
	}
	return -1
}

// removeLine deletes the line and returns its quantity to the ledger.
// Caller holds the lock. Reports whether a line was removed.
func (s *Service) removeLine(productID string) bool {
	i := s.lineIndex(productID)
	if i < 0 {
		return false
	}

	s.ledger.SetStock(productID, s.ledger.Stock(productID)+s.lines[i].Quantity)
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	return true
}

// load reads both blobs once. A missing key initializes the structure
// empty; a blob that fails to parse is treated the same way.
func (s *Service) load(ctx context.Context) {
	if data, err := s.store.Read(ctx, s.cartKey); err == nil {
		var lines []domain.CartLine
		if err := json.Unmarshal(data, &lines); err != nil {
			s.logger.Warn().Err(err).Str("key", s.cartKey).Msg("discarding corrupted cart blob")
		} else {
			s.lines = lines
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		s.logger.Warn().Err(err).Str("key", s.cartKey).Msg("failed to read cart blob")
	}

	if data, err := s.store.Read(ctx, s.stockKey); err == nil {
		var stocks map[string]int
		if err := json.Unmarshal(data, &stocks); err != nil {
			s.logger.Warn().Err(err).Str("key", s.stockKey).Msg("discarding corrupted stock blob")
		} else {
			s.ledger.Restore(stocks)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		s.logger.Warn().Err(err).Str("key", s.stockKey).Msg("failed to read stock blob")
	}
}

// persist writes both blobs. Caller holds the lock. The two writes are
// independent; a crash between them is an accepted inconsistency
// window.
func (s *Service) persist() {
	ctx := context.Background()

	lines := s.lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	if data, err := json.Marshal(lines); err != nil {
		s.logger.Error().Err(err).Msg("failed to marshal cart")
	} else if err := s.store.Write(ctx, s.cartKey, data); err != nil {
		s.logger.Error().Err(err).Str("key", s.cartKey).Msg("failed to persist cart")
	}

	if data, err := json.Marshal(s.ledger.Snapshot()); err != nil {
		s.logger.Error().Err(err).Msg("failed to marshal stock ledger")
	} else if err := s.store.Write(ctx, s.stockKey, data); err != nil {
		s.logger.Error().Err(err).Str("key", s.stockKey).Msg("failed to persist stock ledger")
	}
}
