package model

import "time"

const (
	OrderStatusCompleted = "COMPLETED"
)

// Order is a completed customer purchase. Stock decrements and SALE ledger
// entries for its lines are written in the same transaction that creates it.
type Order struct {
	ID          string      `db:"id" json:"id"`
	CustomerID  string      `db:"customer_id" json:"customerId"`
	TotalAmount float64     `db:"total_amount" json:"totalAmount"`
	Status      string      `db:"status" json:"status"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	Items       []OrderItem `db:"-" json:"items"`
}

// OrderItem captures the price at purchase time.
type OrderItem struct {
	ID        string  `db:"id" json:"id"`
	OrderID   string  `db:"order_id" json:"orderId"`
	ProductID string  `db:"product_id" json:"productId"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Price     float64 `db:"price" json:"price"`
}
