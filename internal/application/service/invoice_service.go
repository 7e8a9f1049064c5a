package service

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tokopos/checkout-api/internal/domain/entity"
	"github.com/tokopos/checkout-api/internal/domain/pricing"
	"github.com/tokopos/checkout-api/pkg/receipt"
)

// nonMemberLabel is shown when a sale has no attached customer.
const nonMemberLabel = "Non-Member"

// InvoiceLine is one displayed line of a rendered invoice.
type InvoiceLine struct {
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	UnitSalePrice decimal.Decimal `json:"unitSalePrice"`
	LineTotal     decimal.Decimal `json:"lineTotal"`
}

// InvoiceView is a finalized sale prepared for display or export. The
// backend persists only the final grand total, so the subtotal and
// discount breakdown here are re-derived from the stored lines through
// the same tier table the checkout screen used at entry time.
type InvoiceView struct {
	InvoiceNumber  string          `json:"invoiceNumber"`
	Timestamp      time.Time       `json:"timestamp"`
	CustomerName   string          `json:"customerName"`
	IsMember       bool            `json:"isMember"`
	Lines          []InvoiceLine   `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountRate   decimal.Decimal `json:"discountRate"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	AmountTendered decimal.Decimal `json:"amountTendered"`
	ChangeDue      decimal.Decimal `json:"changeDue"`
}

// InvoiceService reconstructs finalized sales for display and export.
type InvoiceService struct {
	receiptWidth int
}

// NewInvoiceService creates an invoice service rendering receipts at the
// given character width.
func NewInvoiceService(receiptWidth int) *InvoiceService {
	if receiptWidth <= 0 {
		receiptWidth = 32
	}
	return &InvoiceService{receiptWidth: receiptWidth}
}

// View builds the invoice view for a sale record. The discount breakdown
// is recomputed from the stored lines; the backend's grand total is
// authoritative, so the change line subtracts from it directly.
func (s *InvoiceService) View(rec *entity.SaleRecord) *InvoiceView {
	subtotal := pricing.SaleSubtotal(rec.Lines)

	isMember := rec.Customer != nil && rec.Customer.IsMember
	rate := pricing.DiscountRateFor(subtotal, isMember)
	discountAmount := subtotal.Mul(rate)

	customerName := nonMemberLabel
	if rec.Customer != nil {
		customerName = rec.Customer.Name
	}

	lines := make([]InvoiceLine, 0, len(rec.Lines))
	for _, l := range rec.Lines {
		lines = append(lines, InvoiceLine{
			ProductName:   l.ProductName,
			Quantity:      l.Quantity,
			UnitSalePrice: l.UnitSalePrice,
			LineTotal:     l.LineTotal(),
		})
	}

	return &InvoiceView{
		InvoiceNumber:  rec.InvoiceNumber,
		Timestamp:      rec.Timestamp,
		CustomerName:   customerName,
		IsMember:       isMember,
		Lines:          lines,
		Subtotal:       subtotal,
		DiscountRate:   rate,
		DiscountAmount: discountAmount,
		GrandTotal:     rec.GrandTotal,
		AmountTendered: rec.AmountTendered,
		ChangeDue:      rec.AmountTendered.Sub(rec.GrandTotal),
	}
}

// Receipt renders a fixed-width text receipt for a sale record.
func (s *InvoiceService) Receipt(rec *entity.SaleRecord) string {
	view := s.View(rec)

	doc := receipt.NewDocument(s.receiptWidth)
	doc.Center("INVOICE").
		Center("No. " + view.InvoiceNumber).
		Divider('=').
		Row("Customer", view.CustomerName).
		Row("Date", view.Timestamp.Format("02/01/2006")).
		Divider('-')

	for _, l := range view.Lines {
		doc.Line(l.ProductName)
		doc.Row("  "+formatQty(l.Quantity)+" x "+l.UnitSalePrice.String(), l.LineTotal.String())
	}

	doc.Divider('-').
		Row("Subtotal", view.Subtotal.String())
	if view.DiscountRate.IsPositive() {
		percent := view.DiscountRate.Mul(decimal.NewFromInt(100))
		doc.Row("Member discount ("+percent.String()+"%)", "-"+view.DiscountAmount.String())
	}
	doc.Row("Total", view.GrandTotal.String()).
		Row("Paid", view.AmountTendered.String()).
		Row("Change", view.ChangeDue.String()).
		Divider('=').
		Center("Thank you for your purchase")

	return doc.String()
}

func formatQty(q int) string {
	return decimal.NewFromInt(int64(q)).String()
}
