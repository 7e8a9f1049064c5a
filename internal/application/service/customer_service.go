package service

import (
	"context"
	"strings"
	"sync"

	"github.com/tokopos/checkout-api/internal/domain/entity"
	"github.com/tokopos/checkout-api/pkg/apperror"
)

// RosterFetcher fetches the customer roster from the POS backend.
type RosterFetcher interface {
	CustomerRoster(ctx context.Context, credential string) ([]entity.Customer, error)
}

// CustomerService caches the customer roster and answers member lookups
// for the checkout screen. The roster is fetched once and filtered in
// memory; selection never needs a backend round-trip.
type CustomerService struct {
	fetcher RosterFetcher

	mu     sync.RWMutex
	roster []entity.Customer
}

// NewCustomerService creates a customer service over the given fetcher.
func NewCustomerService(fetcher RosterFetcher) *CustomerService {
	return &CustomerService{fetcher: fetcher}
}

// Refresh replaces the cached roster. On failure the roster empties and
// member search degrades to "no matches".
func (s *CustomerService) Refresh(ctx context.Context, credential string) error {
	roster, err := s.fetcher.CustomerRoster(ctx, credential)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.roster = nil
		return err
	}
	s.roster = roster
	return nil
}

// Search returns members whose display name or member code contains the
// term, case-insensitive. An empty term matches nobody; only members are
// ever returned since only they unlock discount tiers.
func (s *CustomerService) Search(term string) []entity.Customer {
	if term == "" {
		return []entity.Customer{}
	}
	term = strings.ToLower(term)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Customer, 0)
	for _, c := range s.roster {
		if !c.IsMember {
			continue
		}
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.MemberCode), term) {
			out = append(out, c)
		}
	}
	return out
}

// Get looks up a customer by ID.
func (s *CustomerService) Get(customerID string) (entity.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.roster {
		if c.CustomerID == customerID {
			return c, nil
		}
	}
	return entity.Customer{}, apperror.ErrCustomerNotFound
}
