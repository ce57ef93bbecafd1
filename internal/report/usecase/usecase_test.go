package usecase

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sweetshop/inventory-service/internal/model"
	"github.com/sweetshop/inventory-service/internal/report"
	"github.com/sweetshop/inventory-service/internal/report/dto"
	apperrors "github.com/sweetshop/inventory-service/pkg/errors"
)

type fakeProducts struct {
	products []model.Product
}

func (f *fakeProducts) FindByID(_ context.Context, id string) (*model.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			clone := f.products[i]
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) FindAllActive(context.Context) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range f.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) FindActiveBelowStock(_ context.Context, threshold int) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range f.products {
		if p.IsActive && p.Stock <= threshold {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Stock < out[b].Stock })
	return out, nil
}

type fakeLogs struct {
	logs []model.StockLogWithProduct
}

func (f *fakeLogs) ListLogs(_ context.Context, filters *dto.LogFilters) ([]model.StockLogWithProduct, int, error) {
	matched := []model.StockLogWithProduct{}
	for _, l := range f.logs {
		if filters.ProductID != "" && l.ProductID != filters.ProductID {
			continue
		}
		if filters.OperationType != "" && l.OperationType != filters.OperationType {
			continue
		}
		matched = append(matched, l)
	}
	sort.Slice(matched, func(a, b int) bool {
		if !matched[a].CreatedAt.Equal(matched[b].CreatedAt) {
			return matched[a].CreatedAt.After(matched[b].CreatedAt)
		}
		return matched[a].ID > matched[b].ID
	})

	total := len(matched)
	start := (filters.Page - 1) * filters.Limit
	if start > total {
		start = total
	}
	end := start + filters.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *fakeLogs) RecentLogs(ctx context.Context, limit int) ([]model.StockLogWithProduct, error) {
	items, _, err := f.ListLogs(ctx, &dto.LogFilters{Page: 1, Limit: limit})
	return items, err
}

func activeProduct(id, name, category string, price float64, stock int) model.Product {
	return model.Product{ID: id, Name: name, Category: category, Price: price, Stock: stock, IsActive: true}
}

func logEntry(id, productID string, op string, age time.Duration) model.StockLogWithProduct {
	return model.StockLogWithProduct{
		StockLog: model.StockLog{
			ID:            id,
			ProductID:     productID,
			OperationType: op,
			Quantity:      1,
			CreatedAt:     time.Now().Add(-age),
		},
	}
}

func newTestUseCase(products *fakeProducts, logs *fakeLogs) report.UseCase {
	return NewReportUseCase(logs, products, nil, zap.NewNop())
}

func TestListLogs_OrderingAndPagination(t *testing.T) {
	logs := &fakeLogs{logs: []model.StockLogWithProduct{
		logEntry("l1", "p1", model.OperationSale, 3*time.Hour),
		logEntry("l2", "p1", model.OperationRestock, 2*time.Hour),
		logEntry("l3", "p2", model.OperationSale, 1*time.Hour),
	}}
	uc := newTestUseCase(&fakeProducts{}, logs)

	result, err := uc.ListLogs(context.Background(), &dto.LogFilters{Page: 1, Limit: 2})
	require.NoError(t, err)

	require.Len(t, result.Logs, 2)
	assert.Equal(t, "l3", result.Logs[0].ID)
	assert.Equal(t, "l2", result.Logs[1].ID)
	assert.True(t, result.Logs[0].CreatedAt.After(result.Logs[1].CreatedAt))

	assert.Equal(t, 3, result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
	assert.False(t, result.Pagination.HasPrev)
}

func TestListLogs_FilterByTypeAndProduct(t *testing.T) {
	logs := &fakeLogs{logs: []model.StockLogWithProduct{
		logEntry("l1", "p1", model.OperationSale, 3*time.Hour),
		logEntry("l2", "p1", model.OperationRestock, 2*time.Hour),
		logEntry("l3", "p2", model.OperationSale, 1*time.Hour),
	}}
	uc := newTestUseCase(&fakeProducts{}, logs)

	result, err := uc.ListLogs(context.Background(), &dto.LogFilters{
		ProductID:     "p1",
		OperationType: model.OperationSale,
	})
	require.NoError(t, err)
	require.Len(t, result.Logs, 1)
	assert.Equal(t, "l1", result.Logs[0].ID)
}

func TestListLogs_InvalidPagination(t *testing.T) {
	uc := newTestUseCase(&fakeProducts{}, &fakeLogs{})

	cases := []dto.LogFilters{
		{Page: -1},
		{Limit: 101},
		{Limit: -2},
		{OperationType: "GIFT"},
	}
	for _, f := range cases {
		_, err := uc.ListLogs(context.Background(), &f)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.As(err).Code)
	}
}

func TestGetReport_Totals(t *testing.T) {
	products := &fakeProducts{products: []model.Product{
		activeProduct("p1", "Fudge", "Chocolate", 3.0, 10),
		activeProduct("p2", "Truffle", "Chocolate", 5.0, 4),
		activeProduct("p3", "Gummy Bears", "Gummies", 2.0, 0),
		{ID: "p4", Name: "Retired", Category: "Gummies", Price: 9.0, Stock: 100, IsActive: false},
	}}
	uc := newTestUseCase(products, &fakeLogs{})

	r, err := uc.GetReport(context.Background(), 5)
	require.NoError(t, err)

	// Inactive p4 is excluded everywhere.
	assert.Equal(t, 3, r.TotalProducts)
	assert.InDelta(t, 50.0, r.TotalValue, 1e-9)

	require.Len(t, r.LowStockItems, 2)
	for _, item := range r.LowStockItems {
		assert.LessOrEqual(t, item.CurrentStock, 5)
	}
}

func TestGetReport_CategoryBreakdownApproximation(t *testing.T) {
	products := &fakeProducts{products: []model.Product{
		activeProduct("p1", "Fudge", "Chocolate", 2.0, 10),
		activeProduct("p2", "Truffle", "Chocolate", 6.0, 2),
	}}
	uc := newTestUseCase(products, &fakeLogs{})

	r, err := uc.GetReport(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, r.CategoryBreakdown, 1)
	stats := r.CategoryBreakdown[0]
	assert.Equal(t, "Chocolate", stats.Category)
	assert.Equal(t, 2, stats.TotalItems)
	assert.InDelta(t, 6.0, stats.AverageStock, 1e-9)
	// avg price (4.0) * summed stock (12) = 48, not the per-item sum (32).
	assert.InDelta(t, 48.0, stats.TotalValue, 1e-9)
}

func TestGetReport_NegativeThreshold(t *testing.T) {
	uc := newTestUseCase(&fakeProducts{}, &fakeLogs{})
	_, err := uc.GetReport(context.Background(), -1)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.As(err).Code)
}

func TestGetStockAlerts_SeverityBoundaries(t *testing.T) {
	products := &fakeProducts{products: []model.Product{
		activeProduct("p0", "Empty", "A", 1.0, 0),
		activeProduct("p3", "Nearly", "A", 1.0, 3),
		activeProduct("p4", "Low", "A", 1.0, 4),
		activeProduct("p10", "Edge", "A", 1.0, 10),
		activeProduct("p11", "Fine", "A", 1.0, 11),
	}}
	uc := newTestUseCase(products, &fakeLogs{})

	result, err := uc.GetStockAlerts(context.Background(), 10)
	require.NoError(t, err)

	bySeverity := map[string]string{}
	for _, a := range result.Alerts {
		bySeverity[a.ProductID] = a.Severity
	}

	assert.Equal(t, dto.SeverityOutOfStock, bySeverity["p0"])
	assert.Equal(t, dto.SeverityCritical, bySeverity["p3"])
	assert.Equal(t, dto.SeverityLow, bySeverity["p4"])
	assert.Equal(t, dto.SeverityLow, bySeverity["p10"])
	assert.NotContains(t, bySeverity, "p11")

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, dto.AlertSummary{OutOfStock: 1, Critical: 1, Low: 2}, result.Summary)

	// Ordered most critical first.
	for i := 1; i < len(result.Alerts); i++ {
		assert.GreaterOrEqual(t, result.Alerts[i].CurrentStock, result.Alerts[i-1].CurrentStock)
	}
}

func TestGetStockAlerts_IdempotentRead(t *testing.T) {
	products := &fakeProducts{products: []model.Product{
		activeProduct("p1", "Fudge", "Chocolate", 3.0, 2),
	}}
	uc := newTestUseCase(products, &fakeLogs{})

	first, err := uc.GetStockAlerts(context.Background(), 10)
	require.NoError(t, err)
	second, err := uc.GetStockAlerts(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
