package report

import (
	"context"

	"github.com/sweetshop/inventory-service/internal/model"
	"github.com/sweetshop/inventory-service/internal/report/dto"
)

// Repository is the read-only query surface over the ledger history. Product
// aggregates come from catalog.Repository; this one owns the log queries.
type Repository interface {
	// ListLogs returns one page of entries matching the filters, newest
	// first (created_at DESC, id DESC), plus the total matching count.
	ListLogs(ctx context.Context, f *dto.LogFilters) ([]model.StockLogWithProduct, int, error)
	// RecentLogs returns the newest entries across all products.
	RecentLogs(ctx context.Context, limit int) ([]model.StockLogWithProduct, error)
}
