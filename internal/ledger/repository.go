package ledger

import (
	"context"
	"fmt"

	"github.com/sweetshop/inventory-service/internal/model"
)

// StockConflictError reports a conditional stock update that matched no row:
// a concurrent writer consumed the stock between the caller's read and the
// transaction. The product row is untouched and no log row was written.
type StockConflictError struct {
	ProductID string
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock update conflict for product %s", e.ProductID)
}

type Repository interface {
	// ApplyChange atomically applies delta to the product's stock and appends
	// the log entry, in one transaction. The update is conditional on the
	// resulting stock staying non-negative; a miss returns StockConflictError.
	// On success entry.ResultingStock is populated and returned.
	ApplyChange(ctx context.Context, entry *model.StockLog, delta int) (int, error)
}
