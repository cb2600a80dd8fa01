package catalog

import (
	"context"
	"errors"

	"github.com/devaraji08/HarvestHubFinal/internal/domain"
)

// Common errors returned by the catalog
var (
	ErrProductNotFound = errors.New("product not found")
)

// Catalog is the remote product table, scoped by the owning farmer for
// every write. The storefront consumes it as an opaque service; all
// authorization is enforced remotely.
type Catalog interface {
	// Create inserts a product owned by its Farmer field and returns
	// the stored record.
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)

	// ListByFarmer returns all products owned by the farmer, newest
	// first.
	ListByFarmer(ctx context.Context, farmerID string) ([]domain.Product, error)

	// ListActive returns the products visible on the storefront.
	ListActive(ctx context.Context) ([]domain.Product, error)

	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Update modifies the product only when it is owned by farmerID.
	Update(ctx context.Context, farmerID string, p domain.Product) (*domain.Product, error)

	// Delete removes the product only when it is owned by farmerID.
	Delete(ctx context.Context, farmerID, id string) error
}
