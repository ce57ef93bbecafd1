package order

import (
	"context"

	"github.com/sweetshop/inventory-service/internal/model"
	"github.com/sweetshop/inventory-service/internal/order/dto"
)

type UseCase interface {
	// PlaceOrder verifies every line before applying any: if one line fails,
	// no stock moves and no log entries appear for any line.
	PlaceOrder(ctx context.Context, input *dto.PlaceOrderInput) (*model.Order, error)
	GetCustomerOrders(ctx context.Context, customerID string) ([]model.Order, error)
}
