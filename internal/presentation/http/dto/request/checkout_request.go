package request

import "github.com/shopspring/decimal"

// CreateSessionRequest represents a checkout session registration
type CreateSessionRequest struct {
	Role string `json:"role" binding:"omitempty,max=50"`
}

// AddItemRequest adds one unit of a product to the cart
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// SetQuantityRequest sets a cart line's quantity exactly
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SelectCustomerRequest attaches a roster customer to the active sale
type SelectCustomerRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
}

// SetPaymentRequest records the amount tendered
type SetPaymentRequest struct {
	AmountTendered decimal.Decimal `json:"amountTendered"`
}
