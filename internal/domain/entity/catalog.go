package entity

import "github.com/shopspring/decimal"

// CatalogItem is a sellable product as reported by the POS backend for the
// active store. Items are refreshed wholesale from the backend and are
// never mutated by the gateway; stock reflects the backend's count at the
// last fetch.
type CatalogItem struct {
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	Stock         int             `json:"stock"`
	UnitSalePrice decimal.Decimal `json:"unitSalePrice"`
	StoreID       string          `json:"storeId,omitempty"`
}
