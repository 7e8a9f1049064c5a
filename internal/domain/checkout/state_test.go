package checkout_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tokopos/checkout-api/internal/domain/checkout"
	"github.com/tokopos/checkout-api/internal/domain/entity"
	"github.com/tokopos/checkout-api/pkg/apperror"
)

func item(id string, stock int, price string) entity.CatalogItem {
	return entity.CatalogItem{
		ProductID:     id,
		Name:          "Product " + id,
		Stock:         stock,
		UnitSalePrice: decimal.RequireFromString(price),
	}
}

func TestAddItem_NewLine(t *testing.T) {
	s, err := checkout.AddItem(checkout.NewState(), item("p1", 5, "10000"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	line, ok := s.Line("p1")
	if !ok || line.Quantity != 1 {
		t.Fatalf("expected line with quantity 1, got %+v (found=%v)", line, ok)
	}
	if line.Name != "Product p1" || !line.UnitSalePrice.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("line display data not copied from catalog item: %+v", line)
	}
}

func TestAddItem_IncrementsExistingLine(t *testing.T) {
	s := checkout.NewState()
	var err error
	for i := 0; i < 2; i++ {
		if s, err = checkout.AddItem(s, item("p1", 5, "10000")); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if line, _ := s.Line("p1"); line.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", line.Quantity)
	}
	if len(s.Lines) != 1 {
		t.Errorf("expected a single line, got %d", len(s.Lines))
	}
}

func TestAddItem_ZeroStock(t *testing.T) {
	s := checkout.NewState()
	next, err := checkout.AddItem(s, item("p1", 0, "10000"))
	if !errors.Is(err, apperror.ErrStockExhausted) {
		t.Fatalf("expected ErrStockExhausted, got %v", err)
	}
	if len(next.Lines) != 0 {
		t.Errorf("ledger changed on rejected add")
	}
}

func TestAddItem_StockBoundary(t *testing.T) {
	// stock 3 allows quantity to reach exactly 3; the fourth add fails
	it := item("p1", 3, "10000")
	s := checkout.NewState()
	var err error
	for i := 0; i < 3; i++ {
		if s, err = checkout.AddItem(s, it); err != nil {
			t.Fatalf("add %d should succeed: %v", i+1, err)
		}
	}
	if line, _ := s.Line("p1"); line.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", line.Quantity)
	}

	next, err := checkout.AddItem(s, it)
	if !errors.Is(err, apperror.ErrInsufficientStock) {
		t.Fatalf("fourth add: expected ErrInsufficientStock, got %v", err)
	}
	if line, _ := next.Line("p1"); line.Quantity != 3 {
		t.Errorf("quantity changed on rejected add: %d", line.Quantity)
	}
}

func TestSetQuantity_Exact(t *testing.T) {
	s, _ := checkout.AddItem(checkout.NewState(), item("p1", 10, "10000"))
	s, err := checkout.SetQuantity(s, item("p1", 10, "10000"), 7)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if line, _ := s.Line("p1"); line.Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", line.Quantity)
	}
}

func TestSetQuantity_ExceedsStock(t *testing.T) {
	s, _ := checkout.AddItem(checkout.NewState(), item("p1", 4, "10000"))
	next, err := checkout.SetQuantity(s, item("p1", 4, "10000"), 5)
	if !errors.Is(err, apperror.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if line, _ := next.Line("p1"); line.Quantity != 1 {
		t.Errorf("line changed on rejected update: quantity %d", line.Quantity)
	}
}

func TestSetQuantity_BelowOneRemoves(t *testing.T) {
	s, _ := checkout.AddItem(checkout.NewState(), item("p1", 4, "10000"))
	s, err := checkout.SetQuantity(s, item("p1", 4, "10000"), 0)
	if err != nil {
		t.Fatalf("set quantity 0: %v", err)
	}
	if _, ok := s.Line("p1"); ok {
		t.Error("expected line removed when quantity drops below 1")
	}
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	s, _ := checkout.AddItem(checkout.NewState(), item("p1", 4, "10000"))
	s = checkout.RemoveItem(s, "missing")
	if len(s.Lines) != 1 {
		t.Errorf("remove of absent product changed the ledger")
	}
}

func TestClear_ResetsEverything(t *testing.T) {
	s, _ := checkout.AddItem(checkout.NewState(), item("p1", 4, "10000"))
	s = checkout.SelectCustomer(s, entity.Customer{CustomerID: "c1", IsMember: true})
	s = checkout.SetAmountTendered(s, decimal.NewFromInt(50000))

	s = checkout.Clear(s)
	if len(s.Lines) != 0 || s.Customer != nil || !s.AmountTendered.IsZero() {
		t.Errorf("clear left residual state: %+v", s)
	}
}

func TestReducers_DoNotMutatePriorState(t *testing.T) {
	base, _ := checkout.AddItem(checkout.NewState(), item("p1", 9, "10000"))

	if _, err := checkout.AddItem(base, item("p1", 9, "10000")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := checkout.SetQuantity(base, item("p1", 9, "10000"), 5); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	checkout.RemoveItem(base, "p1")

	if line, _ := base.Line("p1"); line.Quantity != 1 {
		t.Errorf("prior state mutated: quantity %d", line.Quantity)
	}
	if len(base.Lines) != 1 {
		t.Errorf("prior state mutated: %d lines", len(base.Lines))
	}
}

func TestSnapshot_ReflectsCustomerSelection(t *testing.T) {
	s, _ := checkout.AddItem(checkout.NewState(), item("p1", 10, "200000"))

	if rate := s.Snapshot().DiscountRate; !rate.IsZero() {
		t.Errorf("no customer: expected rate 0, got %s", rate)
	}

	s = checkout.SelectCustomer(s, entity.Customer{CustomerID: "c1", IsMember: true})
	if rate := s.Snapshot().DiscountRate; !rate.Equal(decimal.RequireFromString("0.02")) {
		t.Errorf("member: expected rate 0.02, got %s", rate)
	}

	s = checkout.ClearCustomer(s)
	if rate := s.Snapshot().DiscountRate; !rate.IsZero() {
		t.Errorf("after clear: expected rate 0, got %s", rate)
	}
}

func TestSetAmountTendered_NegativeClampsToZero(t *testing.T) {
	s := checkout.SetAmountTendered(checkout.NewState(), decimal.NewFromInt(-500))
	if !s.AmountTendered.IsZero() {
		t.Errorf("expected zero, got %s", s.AmountTendered)
	}
}
