package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	customersvc "github.com/retailcore/pos-register-backend/internal/customers"
	"github.com/retailcore/pos-register-backend/pkg/enums"
	pkgerrors "github.com/retailcore/pos-register-backend/pkg/errors"
)

type stubCustomerService struct {
	records []customersvc.Customer
	record  *customersvc.Customer
	err     error
}

func (s *stubCustomerService) List(ctx context.Context) ([]customersvc.Customer, error) {
	return s.records, s.err
}

func (s *stubCustomerService) GetByID(ctx context.Context, id uuid.UUID) (*customersvc.Customer, error) {
	return s.record, s.err
}

func (s *stubCustomerService) Create(ctx context.Context, input customersvc.CreateCustomerInput) (*customersvc.Customer, error) {
	return s.record, s.err
}

func TestCustomerCreateSuccess(t *testing.T) {
	record := &customersvc.Customer{ID: uuid.New(), Name: "Lucia Paredes", Tier: enums.CustomerTierVIP}
	handler := CustomerCreate(&stubCustomerService{record: record}, nil)

	body := strings.NewReader(`{"name":"Lucia Paredes","email":"lucia@example.com","tier":"vip"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
}

func TestCustomerCreateBadEmail(t *testing.T) {
	handler := CustomerCreate(&stubCustomerService{}, nil)

	body := strings.NewReader(`{"name":"Lucia Paredes","email":"not-an-email"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCustomerFetchNotFound(t *testing.T) {
	stub := &stubCustomerService{err: pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")}
	handler := CustomerFetch(stub, nil)

	customerID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/"+customerID, nil)
	req = withRouteParam(req, "customerId", customerID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
