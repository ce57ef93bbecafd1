package dto

import (
	"time"

	"github.com/sweetshop/inventory-service/internal/model"
)

// LogFilters is the typed, already-validated query for listing ledger entries.
// All fields are optional and combined with AND.
type LogFilters struct {
	ProductID     string
	OperationType string
	StartDate     *time.Time
	EndDate       *time.Time
	Page          int
	Limit         int
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// LogView is one ledger entry with its product summary, as rendered by the
// admin dashboard.
type LogView struct {
	ID             string               `json:"id"`
	ProductID      string               `json:"productId"`
	Type           string               `json:"type"`
	Quantity       int                  `json:"quantity"`
	Reason         *string              `json:"reason"`
	ResultingStock int                  `json:"resultingStock"`
	CreatedAt      time.Time            `json:"createdAt"`
	Product        model.ProductSummary `json:"product"`
}

type LogListResponse struct {
	Logs       []LogView  `json:"logs"`
	Pagination Pagination `json:"pagination"`
}

type LowStockItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	CurrentStock int     `json:"currentStock"`
	Price        float64 `json:"price"`
}

type CategoryStats struct {
	Category     string  `json:"category"`
	TotalItems   int     `json:"totalItems"`
	TotalValue   float64 `json:"totalValue"`
	AverageStock float64 `json:"averageStock"`
}

type InventoryReport struct {
	TotalProducts     int             `json:"totalProducts"`
	TotalValue        float64         `json:"totalValue"`
	LowStockItems     []LowStockItem  `json:"lowStockItems"`
	RecentActivities  []LogView       `json:"recentActivities"`
	CategoryBreakdown []CategoryStats `json:"categoryBreakdown"`
}

// Severity levels, most critical first.
const (
	SeverityOutOfStock = "OUT_OF_STOCK"
	SeverityCritical   = "CRITICAL"
	SeverityLow        = "LOW"
)

type StockAlert struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	CurrentStock int    `json:"currentStock"`
	Threshold    int    `json:"threshold"`
	Severity     string `json:"severity"`
}

type AlertSummary struct {
	OutOfStock int `json:"outOfStock"`
	Critical   int `json:"critical"`
	Low        int `json:"low"`
}

type AlertsResponse struct {
	Alerts  []StockAlert `json:"alerts"`
	Total   int          `json:"total"`
	Summary AlertSummary `json:"summary"`
}
