package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"github.com/tokopos/checkout-api/internal/domain/checkout"
	"github.com/tokopos/checkout-api/internal/domain/entity"
	"github.com/tokopos/checkout-api/internal/domain/pricing"
	"github.com/tokopos/checkout-api/internal/infrastructure/backend"
	"github.com/tokopos/checkout-api/pkg/apperror"
)

// SaleSubmitter posts a completed cart to the POS backend.
type SaleSubmitter interface {
	CreateSale(ctx context.Context, credential string, req *backend.CreateSaleRequest) (*entity.SaleRecord, error)
}

// CheckoutService drives one session's checkout flow: cart mutations,
// customer selection, payment entry, and sale submission. Every mutation
// returns the new state together with its recomputed pricing snapshot.
type CheckoutService struct {
	sessions  *SessionService
	catalog   *CatalogService
	customers *CustomerService
	submitter SaleSubmitter
	logger    *zap.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	sessions *SessionService,
	catalog *CatalogService,
	customers *CustomerService,
	submitter SaleSubmitter,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		sessions:  sessions,
		catalog:   catalog,
		customers: customers,
		submitter: submitter,
		logger:    logger,
	}
}

// update applies a reducer to the session's state under its lock.
// Mutations are refused while a submission is in flight so the cart the
// backend is processing cannot shift underneath it.
func (s *CheckoutService) update(sessionID uuid.UUID, fn func(checkout.State) (checkout.State, error)) (checkout.State, pricing.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return checkout.State{}, pricing.Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.submitting {
		return checkout.State{}, pricing.Snapshot{}, apperror.ErrSubmissionInFlight
	}

	next, err := fn(sess.state)
	if err != nil {
		return sess.state, sess.state.Snapshot(), err
	}
	sess.state = next
	return next, next.Snapshot(), nil
}

// State returns the session's current state and pricing snapshot.
func (s *CheckoutService) State(sessionID uuid.UUID) (checkout.State, pricing.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return checkout.State{}, pricing.Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state, sess.state.Snapshot(), nil
}

// AddItem adds one unit of a catalog item to the session's cart.
func (s *CheckoutService) AddItem(sessionID uuid.UUID, productID string) (checkout.State, pricing.Snapshot, error) {
	item, err := s.catalog.Get(productID)
	if err != nil {
		return checkout.State{}, pricing.Snapshot{}, err
	}
	return s.update(sessionID, func(st checkout.State) (checkout.State, error) {
		return checkout.AddItem(st, item)
	})
}

// SetQuantity sets a cart line's quantity against current stock.
func (s *CheckoutService) SetQuantity(sessionID uuid.UUID, productID string, quantity int) (checkout.State, pricing.Snapshot, error) {
	item, err := s.catalog.Get(productID)
	if err != nil {
		return checkout.State{}, pricing.Snapshot{}, err
	}
	return s.update(sessionID, func(st checkout.State) (checkout.State, error) {
		return checkout.SetQuantity(st, item, quantity)
	})
}

// RemoveItem deletes a product's cart line.
func (s *CheckoutService) RemoveItem(sessionID uuid.UUID, productID string) (checkout.State, pricing.Snapshot, error) {
	return s.update(sessionID, func(st checkout.State) (checkout.State, error) {
		return checkout.RemoveItem(st, productID), nil
	})
}

// Clear resets the session's cart, customer, and payment.
func (s *CheckoutService) Clear(sessionID uuid.UUID) (checkout.State, pricing.Snapshot, error) {
	return s.update(sessionID, func(st checkout.State) (checkout.State, error) {
		return checkout.Clear(st), nil
	})
}

// SelectCustomer attaches a roster customer to the active sale.
func (s *CheckoutService) SelectCustomer(sessionID uuid.UUID, customerID string) (checkout.State, pricing.Snapshot, error) {
	customer, err := s.customers.Get(customerID)
	if err != nil {
		return checkout.State{}, pricing.Snapshot{}, err
	}
	return s.update(sessionID, func(st checkout.State) (checkout.State, error) {
		return checkout.SelectCustomer(st, customer), nil
	})
}

// ClearCustomer detaches the selected customer.
func (s *CheckoutService) ClearCustomer(sessionID uuid.UUID) (checkout.State, pricing.Snapshot, error) {
	return s.update(sessionID, func(st checkout.State) (checkout.State, error) {
		return checkout.ClearCustomer(st), nil
	})
}

// SetPayment records the amount tendered.
func (s *CheckoutService) SetPayment(sessionID uuid.UUID, amount decimal.Decimal) (checkout.State, pricing.Snapshot, error) {
	return s.update(sessionID, func(st checkout.State) (checkout.State, error) {
		return checkout.SetAmountTendered(st, amount), nil
	})
}

// Submit validates the cart and posts the sale. Submission is serialized
// per session: a second submit while one is outstanding is rejected, so a
// double click cannot create two sales. On success the session resets and
// the catalog refreshes so stock reflects the backend's decrement; on
// failure the cart, customer, and payment survive untouched for retry.
func (s *CheckoutService) Submit(ctx context.Context, sessionID uuid.UUID) (*entity.SaleRecord, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.submitting {
		sess.mu.Unlock()
		return nil, apperror.ErrSubmissionInFlight
	}

	state := sess.state
	if len(state.Lines) == 0 {
		sess.mu.Unlock()
		return nil, apperror.ErrEmptyCart
	}
	snap := state.Snapshot()
	if state.AmountTendered.LessThan(snap.GrandTotal) {
		sess.mu.Unlock()
		return nil, apperror.ErrInsufficientPayment
	}

	sess.submitting = true
	sess.mu.Unlock()

	req := &backend.CreateSaleRequest{
		Lines:          make([]backend.CreateSaleLine, 0, len(state.Lines)),
		AmountTendered: state.AmountTendered,
	}
	if state.Customer != nil {
		customerID := state.Customer.CustomerID
		req.CustomerID = &customerID
	}
	for _, line := range state.Lines {
		req.Lines = append(req.Lines, backend.CreateSaleLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	record, submitErr := s.submitter.CreateSale(ctx, sess.Credential, req)

	sess.mu.Lock()
	sess.submitting = false
	if submitErr == nil {
		sess.state = checkout.Clear(sess.state)
	}
	sess.mu.Unlock()

	if submitErr != nil {
		return nil, submitErr
	}

	s.logger.Info("sale submitted",
		zap.String("session_id", sessionID.String()),
		zap.String("invoice_number", record.InvoiceNumber),
		zap.String("grand_total", record.GrandTotal.String()))

	// Best-effort: stock changed on the backend, refresh the cache.
	if err := s.catalog.Refresh(ctx, sess.Credential); err != nil {
		s.logger.Warn("post-submit catalog refresh failed", zap.Error(err))
	}

	return record, nil
}
