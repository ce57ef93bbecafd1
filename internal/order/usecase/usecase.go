package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sweetshop/inventory-service/internal/catalog"
	"github.com/sweetshop/inventory-service/internal/ledger"
	ledgerdto "github.com/sweetshop/inventory-service/internal/ledger/dto"
	"github.com/sweetshop/inventory-service/internal/model"
	"github.com/sweetshop/inventory-service/internal/order"
	"github.com/sweetshop/inventory-service/internal/order/dto"
	"github.com/sweetshop/inventory-service/pkg/cache"
	apperrors "github.com/sweetshop/inventory-service/pkg/errors"
)

type orderUseCase struct {
	repo     order.Repository
	products catalog.Repository
	cache    cache.Cache
	logger   *zap.Logger
}

func NewOrderUseCase(repo order.Repository, products catalog.Repository, c cache.Cache, log *zap.Logger) order.UseCase {
	return &orderUseCase{
		repo:     repo,
		products: products,
		cache:    c,
		logger:   log,
	}
}

func (uc *orderUseCase) PlaceOrder(ctx context.Context, input *dto.PlaceOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.NewInvalidArgument("Order items are required", "items")
	}
	for _, line := range input.Items {
		if line.ProductID == "" {
			return nil, apperrors.NewInvalidArgument("productId must be a non-empty string", "items.productId")
		}
		if line.Quantity <= 0 {
			return nil, apperrors.NewInvalidArgument("quantity must be a positive integer", "items.quantity")
		}
		if line.Quantity > ledgerdto.MaxQuantity {
			return nil, apperrors.NewInvalidArgument("quantity cannot exceed 10,000", "items.quantity")
		}
	}

	// Verify every line before touching any stock.
	products := make([]*model.Product, len(input.Items))
	totalAmount := 0.0
	for i, line := range input.Items {
		product, err := uc.products.FindByID(ctx, line.ProductID)
		if err != nil {
			uc.logger.Error("failed to load product", zap.String("product_id", line.ProductID), zap.Error(err))
			return nil, apperrors.NewUnavailable("load product")
		}
		if product == nil || !product.IsActive {
			return nil, apperrors.NewNotFound(fmt.Sprintf("Product not found: %s", line.ProductID))
		}
		if product.Stock < line.Quantity {
			return nil, insufficientForProduct(product, line.Quantity)
		}
		products[i] = product
		totalAmount += product.Price * float64(line.Quantity)
	}

	now := time.Now().UTC()
	o := &model.Order{
		ID:          uuid.New().String(),
		CustomerID:  input.CustomerID,
		TotalAmount: totalAmount,
		Status:      model.OrderStatusCompleted,
		CreatedAt:   now,
		Items:       make([]model.OrderItem, len(input.Items)),
	}
	logs := make([]*model.StockLog, len(input.Items))
	for i, line := range input.Items {
		o.Items[i] = model.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   o.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     products[i].Price,
		}
		reason := fmt.Sprintf("Customer purchase - Order #%s", o.ID)
		logs[i] = &model.StockLog{
			ID:            uuid.New().String(),
			ProductID:     line.ProductID,
			OperationType: model.OperationSale,
			Quantity:      line.Quantity,
			Reason:        &reason,
			CreatedAt:     now,
		}
	}

	if err := uc.repo.PlaceOrder(ctx, o, logs); err != nil {
		var conflict *ledger.StockConflictError
		if errors.As(err, &conflict) {
			// A concurrent writer drained one of the lines mid-flight; the
			// transaction rolled back and nothing was persisted.
			for i, line := range input.Items {
				if line.ProductID == conflict.ProductID {
					if fresh, ferr := uc.products.FindByID(ctx, line.ProductID); ferr == nil && fresh != nil {
						return nil, insufficientForProduct(fresh, line.Quantity)
					}
					return nil, insufficientForProduct(products[i], line.Quantity)
				}
			}
			return nil, apperrors.NewInsufficientStock(0, 0)
		}
		uc.logger.Error("failed to place order", zap.String("customer_id", input.CustomerID), zap.Error(err))
		return nil, apperrors.NewUnavailable("place order")
	}

	uc.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("customer_id", input.CustomerID),
		zap.Int("lines", len(o.Items)),
		zap.Float64("total_amount", totalAmount),
	)

	if uc.cache != nil {
		if err := uc.cache.DeleteByPattern(ctx, "report:*"); err != nil {
			uc.logger.Warn("failed to invalidate report cache", zap.Error(err))
		}
	}

	return o, nil
}

func (uc *orderUseCase) GetCustomerOrders(ctx context.Context, customerID string) ([]model.Order, error) {
	orders, err := uc.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		uc.logger.Error("failed to list orders", zap.String("customer_id", customerID), zap.Error(err))
		return nil, apperrors.NewUnavailable("list orders")
	}
	return orders, nil
}

func insufficientForProduct(p *model.Product, requested int) *apperrors.Error {
	return apperrors.New(
		apperrors.CodeInsufficientStock,
		fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d", p.Name, p.Stock, requested),
		"",
	)
}
