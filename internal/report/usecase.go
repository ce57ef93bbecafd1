package report

import (
	"context"

	"github.com/sweetshop/inventory-service/internal/report/dto"
)

// UseCase is the Inventory Reporting Engine: stateless, read-only derivations
// over current products and the accumulated ledger.
type UseCase interface {
	ListLogs(ctx context.Context, f *dto.LogFilters) (*dto.LogListResponse, error)
	GetReport(ctx context.Context, lowStockThreshold int) (*dto.InventoryReport, error)
	GetStockAlerts(ctx context.Context, threshold int) (*dto.AlertsResponse, error)
}
