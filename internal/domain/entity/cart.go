package entity

import "github.com/shopspring/decimal"

// CartLine is one line of the in-progress sale. Display data is copied
// from the catalog item when the line is created so the cart stays
// renderable even while the catalog refreshes underneath it.
type CartLine struct {
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	UnitSalePrice decimal.Decimal `json:"unitSalePrice"`
	Quantity      int             `json:"quantity"`
}

// LineTotal returns quantity x unit sale price for this line.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitSalePrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
