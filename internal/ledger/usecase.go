package ledger

import (
	"context"

	"github.com/sweetshop/inventory-service/internal/ledger/dto"
)

type UseCase interface {
	// ApplyStockChange validates and applies one stock-changing operation.
	// Validation failures and insufficient stock leave no trace in the store.
	ApplyStockChange(ctx context.Context, input *dto.StockChangeInput) (*dto.LogEntryResponse, error)
}
