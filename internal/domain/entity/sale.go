package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLine is one persisted line of a completed sale as the backend stores
// it. The backend keeps unit cost and pack size per line but not the
// discount breakdown, which must be re-derived on display.
type SaleLine struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	UnitSalePrice decimal.Decimal `json:"unitSalePrice"`
	UnitCostPrice decimal.Decimal `json:"unitCostPrice"`
	PackSize      int             `json:"packSize"`
}

// LineTotal returns quantity x unit sale price for this line.
func (l SaleLine) LineTotal() decimal.Decimal {
	return l.UnitSalePrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SaleRecord is the backend's immutable record of a completed sale. The
// grand total here is the backend-computed, authoritative one.
type SaleRecord struct {
	InvoiceNumber  string          `json:"invoiceNumber"`
	Timestamp      time.Time       `json:"timestamp"`
	Customer       *Customer       `json:"customer,omitempty"`
	Lines          []SaleLine      `json:"lines"`
	AmountTendered decimal.Decimal `json:"amountTendered"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
}
