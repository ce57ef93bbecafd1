package order

import (
	"context"

	"github.com/sweetshop/inventory-service/internal/model"
)

type Repository interface {
	// PlaceOrder persists the order, its items, every stock decrement, and one
	// SALE log entry per line in a single transaction. logs[i] corresponds to
	// order.Items[i]. Any conditional stock update that misses aborts the
	// whole transaction with ledger.StockConflictError.
	PlaceOrder(ctx context.Context, o *model.Order, logs []*model.StockLog) error
	// FindByCustomer lists a customer's orders newest first, items included.
	FindByCustomer(ctx context.Context, customerID string) ([]model.Order, error)
}
