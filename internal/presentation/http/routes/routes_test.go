package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"github.com/tokopos/checkout-api/internal/application/service"
	"github.com/tokopos/checkout-api/internal/config"
	"github.com/tokopos/checkout-api/internal/infrastructure/backend"
	"github.com/tokopos/checkout-api/internal/presentation/http/handler"
)

// newFakeBackend stands in for the POS backend: a catalog with two
// products, one member, and a sale endpoint that echoes a finalized
// record.
func newFakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/products/store", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []map[string]interface{}{
			{"productId": "p1", "name": "Kopi Arabica", "stock": 10, "unitSalePrice": "25000"},
			{"productId": "p2", "name": "Teh Hijau", "stock": 1, "unitSalePrice": "15000"},
		})
	})
	mux.HandleFunc("/api/customers", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []map[string]interface{}{
			{"customerId": "c1", "name": "Budi Santoso", "isMember": true, "memberCode": "M-001"},
		})
	})
	mux.HandleFunc("/api/sales/history", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []map[string]interface{}{})
	})
	mux.HandleFunc("/api/sales", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, map[string]interface{}{
			"invoiceNumber":  "INV-0001",
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
			"lines":          []map[string]interface{}{{"productId": "p1", "productName": "Kopi Arabica", "quantity": 2, "unitSalePrice": "25000", "unitCostPrice": "18000", "packSize": 1}},
			"amountTendered": "50000",
			"grandTotal":     "50000",
		})
	})
	return httptest.NewServer(mux)
}

func writeData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
}

func newTestRouter(t *testing.T, backendURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:       config.AppConfig{Name: "checkout-api", Env: "test", Port: "0"},
		Backend:   config.BackendConfig{BaseURL: backendURL, Timeout: 5 * time.Second},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
		Session:   config.SessionConfig{TTL: time.Hour, CleanupInterval: time.Minute},
		History:   config.HistoryConfig{PerPage: 5},
	}
	logger := zap.NewNop()

	client := backend.NewClient(&cfg.Backend, logger)
	sessions := service.NewSessionService(&cfg.Session, logger)
	catalog := service.NewCatalogService(client)
	customers := service.NewCustomerService(client)
	checkout := service.NewCheckoutService(sessions, catalog, customers, client, logger)
	sales := service.NewSalesService(client, cfg.History.PerPage)
	invoices := service.NewInvoiceService(40)

	return Setup(&Handlers{
		Session:  handler.NewSessionHandler(sessions),
		Catalog:  handler.NewCatalogHandler(catalog),
		Customer: handler.NewCustomerHandler(customers),
		Checkout: handler.NewCheckoutHandler(checkout, invoices),
		Sales:    handler.NewSalesHandler(sales, invoices),
	}, &Deps{Sessions: sessions, Cfg: cfg, Logger: logger})
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path, sessionID string, body interface{}) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env apiEnvelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
		}
	}
	return rec, env
}

func createSession(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/sessions", "", map[string]string{"role": "cashier"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status = %d, want 201", rec.Code)
	}
	var data struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return data.SessionID
}

func TestMissingAuthorizationRejected(t *testing.T) {
	srv := newFakeBackend(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	req.Header.Set("X-Session-ID", "00000000-0000-0000-0000-000000000000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestUnknownSessionRejected(t *testing.T) {
	srv := newFakeBackend(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/v1/checkout", "11111111-1111-1111-1111-111111111111", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestFullCheckoutFlow(t *testing.T) {
	srv := newFakeBackend(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)
	sessionID := createSession(t, router)

	// Load catalog and roster from the backend.
	if rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/catalog/refresh", sessionID, nil); rec.Code != http.StatusOK {
		t.Fatalf("catalog refresh: status = %d", rec.Code)
	}
	if rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/customers/refresh", sessionID, nil); rec.Code != http.StatusOK {
		t.Fatalf("customer refresh: status = %d", rec.Code)
	}

	// Two units of p1.
	for i := 0; i < 2; i++ {
		if rec, env := doJSON(t, router, http.MethodPost, "/api/v1/checkout/items", sessionID, map[string]string{"productId": "p1"}); rec.Code != http.StatusOK {
			t.Fatalf("add item: status = %d, message = %q", rec.Code, env.Message)
		}
	}

	// Member and payment.
	if rec, _ := doJSON(t, router, http.MethodPut, "/api/v1/checkout/customer", sessionID, map[string]string{"customerId": "c1"}); rec.Code != http.StatusOK {
		t.Fatalf("select customer: status = %d", rec.Code)
	}
	rec, env := doJSON(t, router, http.MethodPut, "/api/v1/checkout/payment", sessionID, map[string]string{"amountTendered": "50000"})
	if rec.Code != http.StatusOK {
		t.Fatalf("set payment: status = %d", rec.Code)
	}
	var payload struct {
		Snapshot struct {
			Subtotal   string `json:"subtotal"`
			GrandTotal string `json:"grandTotal"`
		} `json:"snapshot"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	// 2 x 25,000 is below every discount tier.
	if payload.Snapshot.Subtotal != "50000" || payload.Snapshot.GrandTotal != "50000" {
		t.Errorf("snapshot = %+v, want subtotal/grandTotal 50000", payload.Snapshot)
	}

	// Submit and verify the backend record comes back with the invoice.
	rec, env = doJSON(t, router, http.MethodPost, "/api/v1/checkout/submit", sessionID, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: status = %d, message = %q", rec.Code, env.Message)
	}
	var result struct {
		Sale struct {
			InvoiceNumber string `json:"invoiceNumber"`
		} `json:"sale"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode submit result: %v", err)
	}
	if result.Sale.InvoiceNumber != "INV-0001" {
		t.Errorf("invoiceNumber = %q, want INV-0001", result.Sale.InvoiceNumber)
	}

	// Cart resets after a successful submit.
	rec, env = doJSON(t, router, http.MethodGet, "/api/v1/checkout", sessionID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get checkout: status = %d", rec.Code)
	}
	var after struct {
		State struct {
			Lines []json.RawMessage `json:"lines"`
		} `json:"state"`
	}
	if err := json.Unmarshal(env.Data, &after); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if len(after.State.Lines) != 0 {
		t.Errorf("lines after submit = %d, want 0", len(after.State.Lines))
	}
}

func TestSubmitEmptyCartRejected(t *testing.T) {
	srv := newFakeBackend(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)
	sessionID := createSession(t, router)

	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/checkout/submit", sessionID, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if env.Message != "Cart is empty" {
		t.Errorf("message = %q, want %q", env.Message, "Cart is empty")
	}
}

func TestAddItemBeyondStockRejected(t *testing.T) {
	srv := newFakeBackend(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)
	sessionID := createSession(t, router)

	if rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/catalog/refresh", sessionID, nil); rec.Code != http.StatusOK {
		t.Fatalf("catalog refresh: status = %d", rec.Code)
	}

	// p2 has stock 1: first add fits, second exceeds it.
	if rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/checkout/items", sessionID, map[string]string{"productId": "p2"}); rec.Code != http.StatusOK {
		t.Fatalf("first add: status = %d", rec.Code)
	}
	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/checkout/items", sessionID, map[string]string{"productId": "p2"})
	if rec.Code != http.StatusConflict {
		t.Errorf("second add: status = %d, want 409", rec.Code)
	}
	if env.Message != "Insufficient stock" {
		t.Errorf("message = %q, want %q", env.Message, "Insufficient stock")
	}
}
