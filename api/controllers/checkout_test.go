package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	checkoutsvc "github.com/retailcore/pos-register-backend/internal/checkout"
	ledgersvc "github.com/retailcore/pos-register-backend/internal/ledger"
	"github.com/retailcore/pos-register-backend/pkg/enums"
	pkgerrors "github.com/retailcore/pos-register-backend/pkg/errors"
)

type stubCheckoutService struct {
	tx        *ledgersvc.Transaction
	err       error
	lastInput checkoutsvc.CommitInput
}

func (s *stubCheckoutService) Commit(ctx context.Context, input checkoutsvc.CommitInput) (*ledgersvc.Transaction, error) {
	s.lastInput = input
	return s.tx, s.err
}

func (s *stubCheckoutService) Refund(ctx context.Context, transactionID uuid.UUID) (*ledgersvc.Transaction, error) {
	return s.tx, s.err
}

func TestCheckoutCommitSuccess(t *testing.T) {
	tx := &ledgersvc.Transaction{
		ID:            uuid.New(),
		Total:         decimal.RequireFromString("354"),
		Change:        decimal.RequireFromString("46"),
		PaymentMethod: enums.PaymentMethodCash,
		Status:        enums.TransactionStatusCompleted,
	}
	stub := &stubCheckoutService{tx: tx}
	handler := CheckoutCommit(stub, nil)

	body := strings.NewReader(`{"payment_method":"cash","tendered":"400.00"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if stub.lastInput.PaymentMethod != enums.PaymentMethodCash {
		t.Fatalf("unexpected payment method %s", stub.lastInput.PaymentMethod)
	}
	if stub.lastInput.Tendered.String() != "400" {
		t.Fatalf("unexpected tendered %s", stub.lastInput.Tendered)
	}

	var envelope struct {
		Data ledgersvc.Transaction `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != tx.ID {
		t.Fatalf("unexpected transaction id %s", envelope.Data.ID)
	}
}

func TestCheckoutCommitUnknownMethodRejected(t *testing.T) {
	handler := CheckoutCommit(&stubCheckoutService{}, nil)

	body := strings.NewReader(`{"payment_method":"crypto"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCheckoutCommitBadTendered(t *testing.T) {
	handler := CheckoutCommit(&stubCheckoutService{}, nil)

	body := strings.NewReader(`{"payment_method":"cash","tendered":"lots"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCheckoutCommitEmptyCart(t *testing.T) {
	stub := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeEmptyCart, "cannot commit an empty cart")}
	handler := CheckoutCommit(stub, nil)

	body := strings.NewReader(`{"payment_method":"card"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCheckoutCommitInsufficientPayment(t *testing.T) {
	stub := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeInsufficientPayment, "tendered amount is below the total")}
	handler := CheckoutCommit(stub, nil)

	body := strings.NewReader(`{"payment_method":"cash","tendered":"1.00"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", rec.Code)
	}
}

func TestCheckoutCommitInsufficientStock(t *testing.T) {
	stub := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock")}
	handler := CheckoutCommit(stub, nil)

	body := strings.NewReader(`{"payment_method":"card"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}
