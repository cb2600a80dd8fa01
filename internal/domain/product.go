package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog record as sold by a farmer. Once a product is
// placed in a cart the struct is embedded by value, so later catalog
// edits do not affect lines already in a cart.
type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Image       string          `json:"image" db:"image_url"`
	Description string          `json:"description" db:"description"`
	Farmer      string          `json:"farmer" db:"farmer_id"`
	Category    string          `json:"category" db:"category"`
	Stock       int             `json:"stock" db:"stock"`
	IsActive    bool            `json:"is_active" db:"is_active"`
	CreatedAt   time.Time       `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at,omitempty" db:"updated_at"`
}

// CartLine is one product-plus-quantity entry in a cart. Quantity is
// always positive; a line whose quantity would drop to zero is removed
// instead.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal returns price times quantity for this line.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
