package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/retailcore/pos-register-backend/internal/catalog"
	"github.com/retailcore/pos-register-backend/internal/customers"
	pkgerrors "github.com/retailcore/pos-register-backend/pkg/errors"
	"github.com/retailcore/pos-register-backend/pkg/money"
)

type itemLoader interface {
	Lookup(ctx context.Context, id uuid.UUID) (*catalog.Item, error)
}

type customerLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*customers.Customer, error)
}

// Service accumulates the register's single open cart. Quantities never
// exceed the catalog's on-hand stock at the time of the call; requests past
// the ceiling are clamped and the clamp is surfaced on the result.
type Service interface {
	Get(ctx context.Context) Cart
	AddItem(ctx context.Context, itemID uuid.UUID) (*MutationResult, error)
	SetQuantity(ctx context.Context, itemID uuid.UUID, qty int) (*MutationResult, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) (*MutationResult, error)
	SelectCustomer(ctx context.Context, customerID *uuid.UUID) (*MutationResult, error)
	Clear(ctx context.Context)
}

type service struct {
	mu        sync.Mutex
	open      Cart
	catalog   itemLoader
	customers customerLoader
}

// NewService builds a cart service over the given catalog and customer loaders.
func NewService(catalogSvc itemLoader, customersSvc customerLoader) (Service, error) {
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	if customersSvc == nil {
		return nil, fmt.Errorf("customer loader required")
	}
	return &service{catalog: catalogSvc, customers: customersSvc}, nil
}

func (s *service) Get(ctx context.Context) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open.clone()
}

func (s *service) AddItem(ctx context.Context, itemID uuid.UUID) (*MutationResult, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	item, err := s.catalog.Lookup(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item is not available")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.open.Lines {
		if s.open.Lines[i].ItemID == itemID {
			next := s.open.Lines[i].Quantity + 1
			clamped := false
			if next > item.Stock {
				next = item.Stock
				clamped = true
			}
			s.open.Lines[i].Quantity = next
			s.open.Lines[i].LineTotal = money.Line(s.open.Lines[i].UnitPrice, next)
			return &MutationResult{Cart: s.open.clone(), Clamped: clamped}, nil
		}
	}

	if item.Stock < 1 {
		// ceiling is zero: keep the clamp semantics, no line is inserted
		return &MutationResult{Cart: s.open.clone(), Clamped: true}, nil
	}
	s.open.Lines = append(s.open.Lines, Line{
		ItemID:    item.ID,
		Code:      item.Code,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Quantity:  1,
		LineTotal: money.Line(item.UnitPrice, 1),
	})
	return &MutationResult{Cart: s.open.clone()}, nil
}

func (s *service) SetQuantity(ctx context.Context, itemID uuid.UUID, qty int) (*MutationResult, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos := -1
	for i := range s.open.Lines {
		if s.open.Lines[i].ItemID == itemID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item is not in the cart")
	}

	if qty <= 0 {
		s.open.Lines = append(s.open.Lines[:pos], s.open.Lines[pos+1:]...)
		return &MutationResult{Cart: s.open.clone()}, nil
	}

	item, err := s.catalog.Lookup(ctx, itemID)
	if err != nil {
		return nil, err
	}
	clamped := false
	if qty > item.Stock {
		qty = item.Stock
		clamped = true
	}
	if qty == 0 {
		s.open.Lines = append(s.open.Lines[:pos], s.open.Lines[pos+1:]...)
		return &MutationResult{Cart: s.open.clone(), Clamped: clamped}, nil
	}
	s.open.Lines[pos].Quantity = qty
	s.open.Lines[pos].LineTotal = money.Line(s.open.Lines[pos].UnitPrice, qty)
	return &MutationResult{Cart: s.open.clone(), Clamped: clamped}, nil
}

func (s *service) RemoveItem(ctx context.Context, itemID uuid.UUID) (*MutationResult, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.open.Lines {
		if s.open.Lines[i].ItemID == itemID {
			s.open.Lines = append(s.open.Lines[:i], s.open.Lines[i+1:]...)
			return &MutationResult{Cart: s.open.clone()}, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item is not in the cart")
}

func (s *service) SelectCustomer(ctx context.Context, customerID *uuid.UUID) (*MutationResult, error) {
	if customerID == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.open.CustomerID = nil
		return &MutationResult{Cart: s.open.clone()}, nil
	}
	if *customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if _, err := s.customers.GetByID(ctx, *customerID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := *customerID
	s.open.CustomerID = &id
	return &MutationResult{Cart: s.open.clone()}, nil
}

func (s *service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = Cart{}
}
