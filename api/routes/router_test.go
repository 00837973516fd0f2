package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	cartsvc "github.com/retailcore/pos-register-backend/internal/cart"
	catalogsvc "github.com/retailcore/pos-register-backend/internal/catalog"
	checkoutsvc "github.com/retailcore/pos-register-backend/internal/checkout"
	customersvc "github.com/retailcore/pos-register-backend/internal/customers"
	ledgersvc "github.com/retailcore/pos-register-backend/internal/ledger"
	"github.com/retailcore/pos-register-backend/pkg/kvstore"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := kvstore.NewMemory()

	catalogService, err := catalogsvc.NewService(catalogsvc.NewRepository(store))
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}
	customerService, err := customersvc.NewService(customersvc.NewRepository(store))
	if err != nil {
		t.Fatalf("customer service: %v", err)
	}
	cartService, err := cartsvc.NewService(catalogService, customerService)
	if err != nil {
		t.Fatalf("cart service: %v", err)
	}
	ledgerService, err := ledgersvc.NewService(ledgersvc.NewRepository(store))
	if err != nil {
		t.Fatalf("ledger service: %v", err)
	}
	checkoutService, err := checkoutsvc.NewService(cartService, catalogService, ledgerService, decimal.RequireFromString("0.18"), nil, nil)
	if err != nil {
		t.Fatalf("checkout service: %v", err)
	}

	return NewRouter(nil, store, catalogService, cartService, checkoutService, ledgerService, customerService)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestRegisterFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/v1/catalog",
		`{"code":"SKU-100","name":"Americano","category":"drinks","unit_price":"100.00","stock":5,"is_active":true}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("catalog upsert: expected 201 got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode item: %v", err)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/cart/items", `{"item_id":"`+created.Data.ID+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("cart add: expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPut, "/api/v1/cart/items/"+created.Data.ID, `{"quantity":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("cart set quantity: expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/checkout", `{"payment_method":"cash","tendered":"400.00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout: expected 201 got %d: %s", rec.Code, rec.Body.String())
	}

	var committed struct {
		Data struct {
			ID     string `json:"id"`
			Total  string `json:"total"`
			Change string `json:"change"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&committed); err != nil {
		t.Fatalf("decode transaction: %v", err)
	}
	if committed.Data.Total != "354" {
		t.Fatalf("unexpected total %s", committed.Data.Total)
	}
	if committed.Data.Change != "46" {
		t.Fatalf("unexpected change %s", committed.Data.Change)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/sales", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("sales list: expected 200 got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/sales/"+committed.Data.ID+"/refund", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refund: expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/sales?status=refunded", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("filtered list: expected 200 got %d", rec.Code)
	}
	var filtered struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&filtered); err != nil {
		t.Fatalf("decode filtered list: %v", err)
	}
	if len(filtered.Data) != 1 || filtered.Data[0].ID != committed.Data.ID {
		t.Fatalf("unexpected filtered result %+v", filtered.Data)
	}
}

func TestCheckoutEmptyCartOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/checkout", `{"payment_method":"card"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", rec.Code, rec.Body.String())
	}
}
