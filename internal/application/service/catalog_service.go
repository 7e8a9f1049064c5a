package service

import (
	"context"
	"strings"
	"sync"

	"github.com/tokopos/checkout-api/internal/domain/entity"
	"github.com/tokopos/checkout-api/pkg/apperror"
)

// CatalogFetcher fetches the store catalog from the POS backend.
type CatalogFetcher interface {
	StoreCatalog(ctx context.Context, credential string) ([]entity.CatalogItem, error)
}

// CatalogService caches the sellable items of the store this gateway
// serves. The cache is read-only to checkout logic and refreshed
// wholesale from the backend.
type CatalogService struct {
	fetcher CatalogFetcher

	mu    sync.RWMutex
	items []entity.CatalogItem
}

// NewCatalogService creates a catalog service over the given fetcher.
func NewCatalogService(fetcher CatalogFetcher) *CatalogService {
	return &CatalogService{fetcher: fetcher}
}

// Refresh replaces the cache with the backend's current catalog. On fetch
// failure the cache empties so dependent screens degrade to "no data"
// instead of serving stale stock counts.
func (s *CatalogService) Refresh(ctx context.Context, credential string) error {
	items, err := s.fetcher.StoreCatalog(ctx, credential)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.items = nil
		return err
	}
	s.items = items
	return nil
}

// Search returns catalog items whose name contains the term,
// case-insensitive. An empty term returns the whole catalog.
func (s *CatalogService) Search(term string) []entity.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if term == "" {
		out := make([]entity.CatalogItem, len(s.items))
		copy(out, s.items)
		return out
	}

	term = strings.ToLower(term)
	out := make([]entity.CatalogItem, 0)
	for _, item := range s.items {
		if strings.Contains(strings.ToLower(item.Name), term) {
			out = append(out, item)
		}
	}
	return out
}

// Get looks up a catalog item by product ID.
func (s *CatalogService) Get(productID string) (entity.CatalogItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ProductID == productID {
			return item, nil
		}
	}
	return entity.CatalogItem{}, apperror.ErrProductNotInCatalog
}
