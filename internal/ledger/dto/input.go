package dto

// StockChangeInput is the validated request for one stock change.
type StockChangeInput struct {
	ProductID     string
	OperationType string
	Quantity      int
	Reason        *string
	ActorID       string
}

const (
	// MaxQuantity bounds a single operation.
	MaxQuantity = 10000
	// MaxReasonLength bounds the free-text reason.
	MaxReasonLength = 500
)
