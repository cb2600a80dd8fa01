package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/devaraji08/HarvestHubFinal/internal/cart"
	"github.com/devaraji08/HarvestHubFinal/internal/domain"
	"github.com/devaraji08/HarvestHubFinal/internal/store"
)

// Common errors returned by checkout
var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidContact = errors.New("missing or invalid contact details")
)

// CustomerInfo is the checkout form. Payment details are deliberately
// not collected; the payment method is recorded as a label only.
type CustomerInfo struct {
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	ZipCode       string `json:"zip_code"`
	PaymentMethod string `json:"payment_method"`
}

func (c CustomerInfo) validate() error {
	if !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: email", ErrInvalidContact)
	}
	for field, value := range map[string]string{
		"first_name": c.FirstName,
		"last_name":  c.LastName,
		"address":    c.Address,
		"city":       c.City,
		"zip_code":   c.ZipCode,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s", ErrInvalidContact, field)
		}
	}
	return nil
}

// Order is a placed order snapshot. Shipping is free for every order.
type Order struct {
	ID        string            `json:"id"`
	Items     []domain.CartLine `json:"items"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	Shipping  decimal.Decimal   `json:"shipping"`
	Total     decimal.Decimal   `json:"total"`
	Customer  CustomerInfo      `json:"customer"`
	CreatedAt time.Time         `json:"created_at"`
}

type Service struct {
	store  store.Store
	logger zerolog.Logger
}

func NewService(st store.Store, logger zerolog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// PlaceOrder snapshots the cart into an order, persists it, and clears
// the cart (which returns every reservation to the stock ledger). The
// remote backend remains the authority on actual fulfillment.
func (s *Service) PlaceOrder(ctx context.Context, c *cart.Service, info CustomerInfo) (*Order, error) {
	if err := info.validate(); err != nil {
		return nil, err
	}

	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if info.PaymentMethod == "" {
		info.PaymentMethod = "card"
	}

	subtotal := c.TotalPrice()
	order := &Order{
		ID:        uuid.New().String(),
		Items:     items,
		Subtotal:  subtotal,
		Shipping:  decimal.Zero,
		Total:     subtotal,
		Customer:  info,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}
	if err := s.store.Write(ctx, orderKey(order.ID), data); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	c.Clear()
	s.logger.Info().Str("order_id", order.ID).Int("items", len(items)).Msg("order placed")

	return order, nil
}

// Order loads a previously placed order.
func (s *Service) Order(ctx context.Context, id string) (*Order, error) {
	data, err := s.store.Read(ctx, orderKey(id))
	if err != nil {
		return nil, err
	}

	var order Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w", err)
	}
	return &order, nil
}

func orderKey(id string) string {
	return fmt.Sprintf("order:%s", id)
}
