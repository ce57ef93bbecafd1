package dto

// OrderLine is one requested (product, quantity) pair.
type OrderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type PlaceOrderInput struct {
	CustomerID string
	Items      []OrderLine
}
