package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/retailcore/pos-register-backend/pkg/enums"
	pkgerrors "github.com/retailcore/pos-register-backend/pkg/errors"
)

// Service exposes the append-only sales ledger. Committed entries are
// never mutated through the normal flow; SetStatus exists solely for the
// refund path.
type Service interface {
	Append(ctx context.Context, tx Transaction) error
	List(ctx context.Context) ([]Transaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FilterByStatus(ctx context.Context, status enums.TransactionStatus) ([]Transaction, error)
	FilterByDate(ctx context.Context, from, to time.Time) ([]Transaction, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.TransactionStatus) error
}

type service struct {
	repo Repository
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Append(ctx context.Context, tx Transaction) error {
	if tx.ID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "transaction id is required")
	}
	if len(tx.Lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "transaction must contain lines")
	}
	if !tx.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", tx.PaymentMethod))
	}
	if !tx.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid transaction status %q", tx.Status))
	}
	return s.repo.Append(ctx, tx)
}

// List returns the ledger newest-first.
func (s *service) List(ctx context.Context) ([]Transaction, error) {
	transactions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Transaction, len(transactions))
	for i := range transactions {
		out[len(transactions)-1-i] = transactions[i]
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) FilterByStatus(ctx context.Context, status enums.TransactionStatus) ([]Transaction, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid transaction status %q", status))
	}
	transactions, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Status == status {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *service) FilterByDate(ctx context.Context, from, to time.Time) ([]Transaction, error) {
	if !to.IsZero() && !from.IsZero() && to.Before(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date range end precedes start")
	}
	transactions, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !from.IsZero() && tx.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && tx.Timestamp.After(to) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status enums.TransactionStatus) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "transaction id is required")
	}
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid transaction status %q", status))
	}
	return s.repo.SetStatus(ctx, id, status)
}
