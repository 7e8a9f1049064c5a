// Package backend is the gateway's client for the external POS backend.
// The backend owns authentication, persistence, and the authoritative sale
// totals; this client only forwards the session's bearer credential and
// maps the documented request/response shapes.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"github.com/tokopos/checkout-api/internal/config"
	"github.com/tokopos/checkout-api/internal/domain/entity"
	"github.com/tokopos/checkout-api/pkg/apperror"
)

// Client talks to the POS backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a backend client with the configured base URL and
// request timeout.
func NewClient(cfg *config.BackendConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// CreateSaleLine is one line of a sale submission.
type CreateSaleLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateSaleRequest is the body of a sale submission.
type CreateSaleRequest struct {
	CustomerID     *string          `json:"customerId,omitempty"`
	Lines          []CreateSaleLine `json:"lines"`
	AmountTendered decimal.Decimal  `json:"amountTendered"`
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path, credential string, body, out interface{}) (int, string, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return 0, "", fmt.Errorf("backend: encode request: %w", err)
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return 0, "", fmt.Errorf("backend: build request: %w", err)
	}

	// The credential is opaque to the gateway: forwarded, never parsed.
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp.StatusCode, "", fmt.Errorf("backend: decode response: %w", err)
		}
		return resp.StatusCode, "", nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, env.Message, nil
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return resp.StatusCode, "", fmt.Errorf("backend: decode data: %w", err)
		}
	}
	return resp.StatusCode, "", nil
}

// StoreCatalog fetches the sellable items of the caller's store.
func (c *Client) StoreCatalog(ctx context.Context, credential string) ([]entity.CatalogItem, error) {
	var items []entity.CatalogItem
	status, _, err := c.do(ctx, http.MethodGet, "/api/products/store", credential, nil, &items)
	if err != nil || status < 200 || status >= 300 {
		c.logger.Warn("catalog fetch failed", zap.Int("status", status), zap.Error(err))
		return nil, apperror.NewFetchError("product catalog")
	}
	return items, nil
}

// CustomerRoster fetches the customer roster.
func (c *Client) CustomerRoster(ctx context.Context, credential string) ([]entity.Customer, error) {
	var customers []entity.Customer
	status, _, err := c.do(ctx, http.MethodGet, "/api/customers", credential, nil, &customers)
	if err != nil || status < 200 || status >= 300 {
		c.logger.Warn("customer roster fetch failed", zap.Int("status", status), zap.Error(err))
		return nil, apperror.NewFetchError("customer roster")
	}
	return customers, nil
}

// SalesHistory fetches the cashier's completed sales, newest first.
func (c *Client) SalesHistory(ctx context.Context, credential string) ([]entity.SaleRecord, error) {
	var records []entity.SaleRecord
	status, _, err := c.do(ctx, http.MethodGet, "/api/sales/history", credential, nil, &records)
	if err != nil || status < 200 || status >= 300 {
		c.logger.Warn("sales history fetch failed", zap.Int("status", status), zap.Error(err))
		return nil, apperror.NewFetchError("sales history")
	}
	return records, nil
}

// CreateSale posts a sale. On rejection the backend's message is returned
// verbatim so the cashier sees exactly what went wrong.
func (c *Client) CreateSale(ctx context.Context, credential string, req *CreateSaleRequest) (*entity.SaleRecord, error) {
	var record entity.SaleRecord
	status, message, err := c.do(ctx, http.MethodPost, "/api/sales", credential, req, &record)
	if err != nil {
		c.logger.Warn("sale submission failed", zap.Error(err))
		return nil, apperror.NewSubmissionError(http.StatusBadGateway, "Sale submission failed")
	}
	if status < 200 || status >= 300 {
		c.logger.Warn("sale rejected by backend", zap.Int("status", status), zap.String("message", message))
		return nil, apperror.NewSubmissionError(status, message)
	}
	return &record, nil
}
