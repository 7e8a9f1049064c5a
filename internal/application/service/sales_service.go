package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tokopos/checkout-api/internal/domain/entity"
	"github.com/tokopos/checkout-api/internal/domain/pricing"
	"github.com/tokopos/checkout-api/pkg/apperror"
	"github.com/tokopos/checkout-api/pkg/pagination"
)

// HistoryFetcher fetches completed sales from the POS backend.
type HistoryFetcher interface {
	SalesHistory(ctx context.Context, credential string) ([]entity.SaleRecord, error)
}

// SaleSummary is a history row: the persisted record annotated with the
// sum of its line totals, recomputed gateway-side for display.
type SaleSummary struct {
	entity.SaleRecord
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// SalesService serves the cashier's sales history and invoice lookups.
// History lives on the backend; the gateway fetches it fresh and pages it
// in memory.
type SalesService struct {
	fetcher        HistoryFetcher
	defaultPerPage int
}

// NewSalesService creates a sales service with the configured default
// page size.
func NewSalesService(fetcher HistoryFetcher, defaultPerPage int) *SalesService {
	if defaultPerPage < 1 {
		defaultPerPage = 5
	}
	return &SalesService{fetcher: fetcher, defaultPerPage: defaultPerPage}
}

// DefaultPerPage returns the default history page size.
func (s *SalesService) DefaultPerPage() int {
	return s.defaultPerPage
}

// History returns one page of the cashier's sales, each annotated with
// its recomputed line total sum.
func (s *SalesService) History(ctx context.Context, credential string, params *pagination.PaginationParams) (*pagination.PaginatedResult[SaleSummary], error) {
	records, err := s.fetcher.SalesHistory(ctx, credential)
	if err != nil {
		return nil, err
	}

	summaries := make([]SaleSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, SaleSummary{
			SaleRecord:  rec,
			TotalAmount: pricing.SaleSubtotal(rec.Lines),
		})
	}
	return pagination.Paginate(summaries, params), nil
}

// FindByInvoice returns the sale with the given invoice number.
func (s *SalesService) FindByInvoice(ctx context.Context, credential, invoiceNumber string) (*entity.SaleRecord, error) {
	records, err := s.fetcher.SalesHistory(ctx, credential)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].InvoiceNumber == invoiceNumber {
			return &records[i], nil
		}
	}
	return nil, apperror.ErrInvoiceNotFound
}
