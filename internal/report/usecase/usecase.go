package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/sweetshop/inventory-service/internal/catalog"
	"github.com/sweetshop/inventory-service/internal/model"
	"github.com/sweetshop/inventory-service/internal/report"
	"github.com/sweetshop/inventory-service/internal/report/dto"
	"github.com/sweetshop/inventory-service/pkg/cache"
	apperrors "github.com/sweetshop/inventory-service/pkg/errors"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100

	recentActivityCount = 20

	reportCacheTTL = 30 * time.Second
)

type reportUseCase struct {
	repo     report.Repository
	products catalog.Repository
	cache    cache.Cache
	logger   *zap.Logger
}

func NewReportUseCase(repo report.Repository, products catalog.Repository, c cache.Cache, log *zap.Logger) report.UseCase {
	return &reportUseCase{
		repo:     repo,
		products: products,
		cache:    c,
		logger:   log,
	}
}

func (uc *reportUseCase) ListLogs(ctx context.Context, f *dto.LogFilters) (*dto.LogListResponse, error) {
	if f.Page == 0 {
		f.Page = defaultPage
	}
	if f.Limit == 0 {
		f.Limit = defaultLimit
	}
	if f.Page < 1 {
		return nil, apperrors.NewInvalidArgument("page must be a positive integer", "page")
	}
	if f.Limit < 1 || f.Limit > maxLimit {
		return nil, apperrors.NewInvalidArgument("limit must be between 1 and 100", "limit")
	}
	if f.OperationType != "" && !model.ValidOperationType(f.OperationType) {
		return nil, apperrors.NewInvalidArgument(
			"type must be one of: RESTOCK, SALE, DAMAGE, EXPIRED", "type")
	}

	logs, total, err := uc.repo.ListLogs(ctx, f)
	if err != nil {
		uc.logger.Error("failed to list stock logs", zap.Error(err))
		return nil, apperrors.NewUnavailable("list stock logs")
	}

	totalPages := (total + f.Limit - 1) / f.Limit
	return &dto.LogListResponse{
		Logs: toLogViews(logs),
		Pagination: dto.Pagination{
			Page:       f.Page,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    f.Page < totalPages,
			HasPrev:    f.Page > 1,
		},
	}, nil
}

func (uc *reportUseCase) GetReport(ctx context.Context, lowStockThreshold int) (*dto.InventoryReport, error) {
	if lowStockThreshold < 0 {
		return nil, apperrors.NewInvalidArgument("lowStockThreshold must be a non-negative integer", "lowStockThreshold")
	}

	cacheKey := fmt.Sprintf("report:inventory:%d", lowStockThreshold)
	if uc.cache != nil {
		var cached dto.InventoryReport
		if err := cache.GetJSON(ctx, uc.cache, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	products, err := uc.products.FindAllActive(ctx)
	if err != nil {
		uc.logger.Error("failed to load active products", zap.Error(err))
		return nil, apperrors.NewUnavailable("load products")
	}

	recent, err := uc.repo.RecentLogs(ctx, recentActivityCount)
	if err != nil {
		uc.logger.Error("failed to load recent activity", zap.Error(err))
		return nil, apperrors.NewUnavailable("load recent activity")
	}

	totalValue := 0.0
	lowStock := []dto.LowStockItem{}
	for _, p := range products {
		totalValue += p.Price * float64(p.Stock)
		if p.Stock <= lowStockThreshold {
			lowStock = append(lowStock, dto.LowStockItem{
				ID:           p.ID,
				Name:         p.Name,
				Category:     p.Category,
				CurrentStock: p.Stock,
				Price:        p.Price,
			})
		}
	}

	result := &dto.InventoryReport{
		TotalProducts:     len(products),
		TotalValue:        round2(totalValue),
		LowStockItems:     lowStock,
		RecentActivities:  toLogViews(recent),
		CategoryBreakdown: categoryBreakdown(products),
	}

	if uc.cache != nil {
		if err := cache.SetJSON(ctx, uc.cache, cacheKey, result, reportCacheTTL); err != nil {
			uc.logger.Warn("failed to cache report", zap.Error(err))
		}
	}
	return result, nil
}

func (uc *reportUseCase) GetStockAlerts(ctx context.Context, threshold int) (*dto.AlertsResponse, error) {
	if threshold < 0 {
		return nil, apperrors.NewInvalidArgument("threshold must be a non-negative integer", "threshold")
	}

	cacheKey := fmt.Sprintf("report:alerts:%d", threshold)
	if uc.cache != nil {
		var cached dto.AlertsResponse
		if err := cache.GetJSON(ctx, uc.cache, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	products, err := uc.products.FindActiveBelowStock(ctx, threshold)
	if err != nil {
		uc.logger.Error("failed to load low-stock products", zap.Error(err))
		return nil, apperrors.NewUnavailable("load low-stock products")
	}

	alerts := make([]dto.StockAlert, len(products))
	summary := dto.AlertSummary{}
	for i, p := range products {
		severity := classifySeverity(p.Stock, threshold)
		switch severity {
		case dto.SeverityOutOfStock:
			summary.OutOfStock++
		case dto.SeverityCritical:
			summary.Critical++
		default:
			summary.Low++
		}
		alerts[i] = dto.StockAlert{
			ProductID:    p.ID,
			ProductName:  p.Name,
			CurrentStock: p.Stock,
			Threshold:    threshold,
			Severity:     severity,
		}
	}

	result := &dto.AlertsResponse{
		Alerts:  alerts,
		Total:   len(alerts),
		Summary: summary,
	}

	if uc.cache != nil {
		if err := cache.SetJSON(ctx, uc.cache, cacheKey, result, reportCacheTTL); err != nil {
			uc.logger.Warn("failed to cache alerts", zap.Error(err))
		}
	}
	return result, nil
}

// classifySeverity buckets a depleted product. Boundaries are inclusive on
// the critical side: stock == 0.3*threshold is still CRITICAL.
func classifySeverity(stock, threshold int) string {
	switch {
	case stock == 0:
		return dto.SeverityOutOfStock
	case float64(stock) <= float64(threshold)*0.3:
		return dto.SeverityCritical
	default:
		return dto.SeverityLow
	}
}

// categoryBreakdown groups active products per category. totalValue is
// average price times summed stock, not a per-item sum. The dashboard and
// its historical exports were built on this number, so it stays.
func categoryBreakdown(products []model.Product) []dto.CategoryStats {
	type agg struct {
		count    int
		sumPrice float64
		sumStock int
	}
	byCategory := map[string]*agg{}
	for _, p := range products {
		a, ok := byCategory[p.Category]
		if !ok {
			a = &agg{}
			byCategory[p.Category] = a
		}
		a.count++
		a.sumPrice += p.Price
		a.sumStock += p.Stock
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	stats := make([]dto.CategoryStats, len(categories))
	for i, c := range categories {
		a := byCategory[c]
		avgPrice := a.sumPrice / float64(a.count)
		avgStock := float64(a.sumStock) / float64(a.count)
		stats[i] = dto.CategoryStats{
			Category:     c,
			TotalItems:   a.count,
			TotalValue:   round2(avgPrice * float64(a.sumStock)),
			AverageStock: round2(avgStock),
		}
	}
	return stats
}

func toLogViews(logs []model.StockLogWithProduct) []dto.LogView {
	views := make([]dto.LogView, len(logs))
	for i, l := range logs {
		views[i] = dto.LogView{
			ID:             l.ID,
			ProductID:      l.ProductID,
			Type:           l.OperationType,
			Quantity:       l.Quantity,
			Reason:         l.Reason,
			ResultingStock: l.ResultingStock,
			CreatedAt:      l.CreatedAt,
			Product: model.ProductSummary{
				ID:           l.ProductID,
				Name:         l.ProductName,
				Category:     l.ProductCategory,
				CurrentStock: l.ProductStock,
			},
		}
	}
	return views
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
