package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sweetshop/inventory-service/internal/catalog"
	"github.com/sweetshop/inventory-service/internal/ledger"
	"github.com/sweetshop/inventory-service/internal/ledger/dto"
	"github.com/sweetshop/inventory-service/internal/model"
	"github.com/sweetshop/inventory-service/pkg/cache"
	apperrors "github.com/sweetshop/inventory-service/pkg/errors"
)

const lockTTL = 5 * time.Second

type ledgerUseCase struct {
	repo     ledger.Repository
	products catalog.Repository
	cache    cache.Cache
	logger   *zap.Logger
}

func NewLedgerUseCase(repo ledger.Repository, products catalog.Repository, c cache.Cache, log *zap.Logger) ledger.UseCase {
	return &ledgerUseCase{
		repo:     repo,
		products: products,
		cache:    c,
		logger:   log,
	}
}

func (uc *ledgerUseCase) ApplyStockChange(ctx context.Context, input *dto.StockChangeInput) (*dto.LogEntryResponse, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Serialize concurrent changes to the same product. The conditional
	// update in the repository is the correctness backstop; the lock keeps
	// the common path free of conflict retries.
	if uc.cache != nil {
		lockKey := "lock:stock:" + input.ProductID
		lockValue := uuid.New().String()

		acquired := false
		for i := 0; i < 3; i++ {
			ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, lockTTL)
			if err != nil {
				uc.logger.Error("failed to acquire stock lock", zap.Error(err))
				break
			}
			if ok {
				acquired = true
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
		if acquired {
			defer uc.cache.ReleaseLock(ctx, lockKey, lockValue)
		}
	}

	product, err := uc.products.FindByID(ctx, input.ProductID)
	if err != nil {
		uc.logger.Error("failed to load product", zap.String("product_id", input.ProductID), zap.Error(err))
		return nil, apperrors.NewUnavailable("load product")
	}
	if product == nil {
		return nil, apperrors.NewNotFound("Product not found")
	}

	delta := input.Quantity
	if input.OperationType != model.OperationRestock {
		if product.Stock < input.Quantity {
			return nil, apperrors.NewInsufficientStock(product.Stock, input.Quantity)
		}
		delta = -input.Quantity
	}

	entry := &model.StockLog{
		ID:            uuid.New().String(),
		ProductID:     input.ProductID,
		OperationType: input.OperationType,
		Quantity:      input.Quantity,
		Reason:        input.Reason,
		CreatedAt:     time.Now().UTC(),
	}

	resulting, err := uc.repo.ApplyChange(ctx, entry, delta)
	if err != nil {
		var conflict *ledger.StockConflictError
		if errors.As(err, &conflict) {
			// A concurrent writer consumed the stock after our read. Report
			// the freshest availability we can get.
			available := product.Stock
			if fresh, ferr := uc.products.FindByID(ctx, input.ProductID); ferr == nil && fresh != nil {
				available = fresh.Stock
			}
			return nil, apperrors.NewInsufficientStock(available, input.Quantity)
		}
		uc.logger.Error("failed to apply stock change",
			zap.String("product_id", input.ProductID),
			zap.String("operation_type", input.OperationType),
			zap.Error(err),
		)
		return nil, apperrors.NewUnavailable("apply stock change")
	}

	uc.logger.Info("stock change applied",
		zap.String("product_id", input.ProductID),
		zap.String("operation_type", input.OperationType),
		zap.Int("quantity", input.Quantity),
		zap.Int("resulting_stock", resulting),
		zap.String("actor_id", input.ActorID),
	)

	if uc.cache != nil {
		if err := uc.cache.DeleteByPattern(ctx, "report:*"); err != nil {
			uc.logger.Warn("failed to invalidate report cache", zap.Error(err))
		}
	}

	return &dto.LogEntryResponse{
		ID:             entry.ID,
		ProductID:      entry.ProductID,
		Type:           entry.OperationType,
		Quantity:       entry.Quantity,
		Reason:         entry.Reason,
		ResultingStock: resulting,
		CreatedAt:      entry.CreatedAt,
		Product: model.ProductSummary{
			ID:           product.ID,
			Name:         product.Name,
			Category:     product.Category,
			CurrentStock: resulting,
		},
	}, nil
}

func validateInput(input *dto.StockChangeInput) error {
	if strings.TrimSpace(input.ProductID) == "" {
		return apperrors.NewInvalidArgument("productId must be a non-empty string", "productId")
	}
	if !model.ValidOperationType(input.OperationType) {
		return apperrors.NewInvalidArgument(
			fmt.Sprintf("type must be one of: %s", strings.Join(model.OperationTypes, ", ")),
			"type",
		)
	}
	if input.Quantity <= 0 {
		return apperrors.NewInvalidArgument("quantity must be a positive integer", "quantity")
	}
	if input.Quantity > dto.MaxQuantity {
		return apperrors.NewInvalidArgument("quantity cannot exceed 10,000", "quantity")
	}
	if input.Reason != nil && len(*input.Reason) > dto.MaxReasonLength {
		return apperrors.NewInvalidArgument("reason must be less than 500 characters", "reason")
	}
	return nil
}
