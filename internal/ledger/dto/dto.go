package dto

import (
	"time"

	"github.com/sweetshop/inventory-service/internal/model"
)

// LogEntryResponse is the created ledger entry with the product summary
// embedded, matching what the storefront renders.
type LogEntryResponse struct {
	ID             string               `json:"id"`
	ProductID      string               `json:"productId"`
	Type           string               `json:"type"`
	Quantity       int                  `json:"quantity"`
	Reason         *string              `json:"reason"`
	ResultingStock int                  `json:"resultingStock"`
	CreatedAt      time.Time            `json:"createdAt"`
	Product        model.ProductSummary `json:"product"`
}
