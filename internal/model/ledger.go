package model

import "time"

// Operation types form a closed set; anything else is rejected at the boundary.
const (
	OperationRestock = "RESTOCK"
	OperationSale    = "SALE"
	OperationDamage  = "DAMAGE"
	OperationExpired = "EXPIRED"
)

// OperationTypes lists the valid tags in the order they are reported to callers.
var OperationTypes = []string{OperationRestock, OperationSale, OperationDamage, OperationExpired}

// ValidOperationType reports whether t is one of the four known tags.
func ValidOperationType(t string) bool {
	switch t {
	case OperationRestock, OperationSale, OperationDamage, OperationExpired:
		return true
	}
	return false
}

// StockLog is the append-only audit record of one applied stock change.
// Rows are never updated or deleted; resulting_stock is denormalized so
// reports never replay history.
type StockLog struct {
	ID             string    `db:"id" json:"id"`
	ProductID      string    `db:"product_id" json:"productId"`
	OperationType  string    `db:"operation_type" json:"type"`
	Quantity       int       `db:"quantity" json:"quantity"`
	Reason         *string   `db:"reason" json:"reason"`
	ResultingStock int       `db:"resulting_stock" json:"resultingStock"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// StockLogWithProduct embeds the product summary joined for list/report views.
type StockLogWithProduct struct {
	StockLog
	ProductName     string `db:"product_name" json:"-"`
	ProductCategory string `db:"product_category" json:"-"`
	ProductStock    int    `db:"product_stock" json:"-"`
}
