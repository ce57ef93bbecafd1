package catalog

import (
	"context"

	"github.com/sweetshop/inventory-service/internal/model"
)

// Repository is the read-side boundary to the product catalog. Product rows
// are owned by the catalog service; nothing here writes them (the ledger
// repository owns the single permitted stock mutation).
type Repository interface {
	// FindByID returns nil, nil when the product does not exist.
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAllActive(ctx context.Context) ([]model.Product, error)
	// FindActiveBelowStock lists active products with stock <= threshold,
	// most depleted first.
	FindActiveBelowStock(ctx context.Context, threshold int) ([]model.Product, error)
}
