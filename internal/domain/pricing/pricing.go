// Package pricing holds the sale computation rules shared by the live
// checkout screen and invoice playback. Both paths must derive discounts
// from the same tier table, so the table lives here and nowhere else.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/tokopos/checkout-api/internal/domain/entity"
)

// Tier maps a subtotal threshold to a member discount rate.
type Tier struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

// Member discount tiers, highest threshold first. Exactly one tier
// applies: the first whose threshold the subtotal reaches. No stacking.
var tiers = []Tier{
	{Threshold: decimal.NewFromInt(1_000_000), Rate: decimal.RequireFromString("0.10")},
	{Threshold: decimal.NewFromInt(300_000), Rate: decimal.RequireFromString("0.05")},
	{Threshold: decimal.NewFromInt(150_000), Rate: decimal.RequireFromString("0.02")},
}

// Snapshot is the derived pricing state of a sale in progress. It is
// recomputed on every cart or customer mutation and never persisted; the
// backend computes its own authoritative total at submission time.
type Snapshot struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountRate   decimal.Decimal `json:"discountRate"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	AmountTendered decimal.Decimal `json:"amountTendered"`
	ChangeDue      decimal.Decimal `json:"changeDue"`
}

// DiscountRateFor returns the discount rate for a subtotal. Non-members
// always get rate 0 regardless of subtotal.
func DiscountRateFor(subtotal decimal.Decimal, isMember bool) decimal.Decimal {
	if !isMember {
		return decimal.Zero
	}
	for _, t := range tiers {
		if subtotal.GreaterThanOrEqual(t.Threshold) {
			return t.Rate
		}
	}
	return decimal.Zero
}

// Subtotal sums quantity x unit sale price over the cart lines.
func Subtotal(lines []entity.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// SaleSubtotal sums quantity x unit sale price over a sale record's stored
// lines. Invoice playback uses this instead of trusting any
// backend-supplied subtotal.
func SaleSubtotal(lines []entity.SaleLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// Compute derives the full pricing snapshot for the in-progress sale. It
// is total over its inputs: any cart, customer, and tendered amount yield
// a snapshot, never an error.
func Compute(lines []entity.CartLine, customer *entity.Customer, amountTendered decimal.Decimal) Snapshot {
	subtotal := Subtotal(lines)

	isMember := customer != nil && customer.IsMember
	rate := DiscountRateFor(subtotal, isMember)

	discountAmount := subtotal.Mul(rate)
	grandTotal := subtotal.Sub(discountAmount)

	changeDue := amountTendered.Sub(grandTotal)
	if changeDue.IsNegative() {
		changeDue = decimal.Zero
	}

	return Snapshot{
		Subtotal:       subtotal,
		DiscountRate:   rate,
		DiscountAmount: discountAmount,
		GrandTotal:     grandTotal,
		AmountTendered: amountTendered,
		ChangeDue:      changeDue,
	}
}
