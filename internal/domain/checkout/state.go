// Package checkout models the in-progress sale as a single immutable
// state value with pure reducers. Every mutation returns a new State; the
// caller decides where the state lives (one per cashier session).
package checkout

import (
	"github.com/shopspring/decimal"
	"github.com/tokopos/checkout-api/internal/domain/entity"
	"github.com/tokopos/checkout-api/internal/domain/pricing"
	"github.com/tokopos/checkout-api/pkg/apperror"
)

// State is the full checkout state of one session: the cart ledger, the
// optionally attached customer, and the amount tendered so far. Lines are
// ordered by insertion and unique per product.
type State struct {
	Lines          []entity.CartLine `json:"lines"`
	Customer       *entity.Customer  `json:"customer,omitempty"`
	AmountTendered decimal.Decimal   `json:"amountTendered"`
}

// NewState returns the empty checkout state of a fresh session.
func NewState() State {
	return State{AmountTendered: decimal.Zero}
}

// Snapshot derives the pricing snapshot for the current state.
func (s State) Snapshot() pricing.Snapshot {
	return pricing.Compute(s.Lines, s.Customer, s.AmountTendered)
}

// Line returns the cart line for a product, if present.
func (s State) Line(productID string) (entity.CartLine, bool) {
	for _, l := range s.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return entity.CartLine{}, false
}

func cloneLines(lines []entity.CartLine) []entity.CartLine {
	out := make([]entity.CartLine, len(lines))
	copy(out, lines)
	return out
}

// AddItem adds one unit of a catalog item to the cart. Items with zero
// stock are rejected outright; incrementing an existing line past the
// item's current stock is rejected and leaves the ledger unchanged.
func AddItem(s State, item entity.CatalogItem) (State, error) {
	if item.Stock == 0 {
		return s, apperror.ErrStockExhausted
	}

	lines := cloneLines(s.Lines)
	for i, l := range lines {
		if l.ProductID != item.ProductID {
			continue
		}
		if l.Quantity >= item.Stock {
			return s, apperror.ErrInsufficientStock
		}
		lines[i].Quantity++
		s.Lines = lines
		return s, nil
	}

	s.Lines = append(lines, entity.CartLine{
		ProductID:     item.ProductID,
		Name:          item.Name,
		UnitSalePrice: item.UnitSalePrice,
		Quantity:      1,
	})
	return s, nil
}

// SetQuantity sets a line's quantity exactly. Quantities above the item's
// current stock are rejected; quantities below 1 remove the line. Setting
// a quantity for a product with no line is a no-op.
func SetQuantity(s State, item entity.CatalogItem, quantity int) (State, error) {
	if quantity > item.Stock {
		return s, apperror.ErrInsufficientStock
	}
	if quantity < 1 {
		return RemoveItem(s, item.ProductID), nil
	}

	lines := cloneLines(s.Lines)
	for i, l := range lines {
		if l.ProductID == item.ProductID {
			lines[i].Quantity = quantity
			s.Lines = lines
			return s, nil
		}
	}
	return s, nil
}

// RemoveItem deletes a product's line. Absent lines are a no-op.
func RemoveItem(s State, productID string) State {
	lines := make([]entity.CartLine, 0, len(s.Lines))
	for _, l := range s.Lines {
		if l.ProductID != productID {
			lines = append(lines, l)
		}
	}
	s.Lines = lines
	return s
}

// Clear empties the ledger, detaches the customer, and resets the
// tendered amount. Used after successful submission or a manual reset.
func Clear(s State) State {
	return NewState()
}

// SelectCustomer attaches a customer to the active sale.
func SelectCustomer(s State, c entity.Customer) State {
	s.Customer = &c
	return s
}

// ClearCustomer detaches the customer, reverting to rate 0 regardless of
// subtotal.
func ClearCustomer(s State) State {
	s.Customer = nil
	return s
}

// SetAmountTendered records the amount the customer is paying with.
// Negative amounts are treated as zero.
func SetAmountTendered(s State, amount decimal.Decimal) State {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	s.AmountTendered = amount
	return s
}
