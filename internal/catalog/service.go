package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	pkgerrors "github.com/retailcore/pos-register-backend/pkg/errors"
	"github.com/retailcore/pos-register-backend/pkg/money"
)

// Service exposes catalog reads and the stock mutations the register needs.
type Service interface {
	List(ctx context.Context) ([]Item, error)
	Lookup(ctx context.Context, id uuid.UUID) (*Item, error)
	LookupByCode(ctx context.Context, code string) (*Item, error)
	Upsert(ctx context.Context, input UpsertItemInput) (*Item, error)
	DecrementAll(ctx context.Context, changes []StockChange) error
	IncrementAll(ctx context.Context, changes []StockChange) error
}

type service struct {
	repo Repository
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// UpsertItemInput captures the product-management surface for catalog writes.
type UpsertItemInput struct {
	ID        *uuid.UUID
	Code      string
	Name      string
	Category  string
	UnitPrice string
	Stock     int
	IsActive  bool
}

func (s *service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

func (s *service) Lookup(ctx context.Context, id uuid.UUID) (*Item, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) LookupByCode(ctx context.Context, code string) (*Item, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item code is required")
	}
	return s.repo.FindByCode(ctx, code)
}

func (s *service) Upsert(ctx context.Context, input UpsertItemInput) (*Item, error) {
	item, err := buildItem(input)
	if err != nil {
		return nil, err
	}

	var saved Item
	err = s.repo.Mutate(ctx, func(items []Item) ([]Item, error) {
		for i := range items {
			if items[i].Code == item.Code && items[i].ID != item.ID {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "item code already in use")
			}
		}
		for i := range items {
			if items[i].ID == item.ID {
				item.CreatedAt = items[i].CreatedAt
				item.UpdatedAt = time.Now().UTC()
				items[i] = item
				saved = item
				return items, nil
			}
		}
		now := time.Now().UTC()
		item.CreatedAt = now
		item.UpdatedAt = now
		saved = item
		return append(items, item), nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// DecrementAll validates every change against current stock before any of
// them is applied; the batch either lands whole or not at all.
func (s *service) DecrementAll(ctx context.Context, changes []StockChange) error {
	if len(changes) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no stock changes provided")
	}
	return s.repo.Mutate(ctx, func(items []Item) ([]Item, error) {
		index := indexByID(items)

		var verr error
		insufficient := false
		for _, change := range changes {
			if change.Qty <= 0 {
				verr = multierr.Append(verr, fmt.Errorf("item %s: quantity must be positive", change.ItemID))
				continue
			}
			pos, ok := index[change.ItemID]
			if !ok {
				verr = multierr.Append(verr, fmt.Errorf("item %s: not found", change.ItemID))
				continue
			}
			if items[pos].Stock < change.Qty {
				insufficient = true
				verr = multierr.Append(verr, fmt.Errorf("item %s: requested %d, on hand %d", change.ItemID, change.Qty, items[pos].Stock))
			}
		}
		if verr != nil {
			code := pkgerrors.CodeNotFound
			if insufficient {
				code = pkgerrors.CodeInsufficientStock
			}
			return nil, pkgerrors.Wrap(code, verr, "stock validation failed")
		}

		now := time.Now().UTC()
		for _, change := range changes {
			pos := index[change.ItemID]
			items[pos].Stock -= change.Qty
			items[pos].UpdatedAt = now
		}
		return items, nil
	})
}

// IncrementAll restocks the given quantities; used by refunds and by
// commit compensation.
func (s *service) IncrementAll(ctx context.Context, changes []StockChange) error {
	if len(changes) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no stock changes provided")
	}
	return s.repo.Mutate(ctx, func(items []Item) ([]Item, error) {
		index := indexByID(items)

		var verr error
		for _, change := range changes {
			if change.Qty <= 0 {
				verr = multierr.Append(verr, fmt.Errorf("item %s: quantity must be positive", change.ItemID))
				continue
			}
			if _, ok := index[change.ItemID]; !ok {
				verr = multierr.Append(verr, fmt.Errorf("item %s: not found", change.ItemID))
			}
		}
		if verr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, verr, "stock validation failed")
		}

		now := time.Now().UTC()
		for _, change := range changes {
			pos := index[change.ItemID]
			items[pos].Stock += change.Qty
			items[pos].UpdatedAt = now
		}
		return items, nil
	})
}

func buildItem(input UpsertItemInput) (Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "item code is required")
	}
	price, err := parsePrice(input.UnitPrice)
	if err != nil {
		return Item{}, err
	}
	if input.Stock < 0 {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}

	id := uuid.New()
	if input.ID != nil && *input.ID != uuid.Nil {
		id = *input.ID
	}
	return Item{
		ID:        id,
		Code:      code,
		Name:      name,
		Category:  strings.TrimSpace(input.Category),
		UnitPrice: price,
		Stock:     input.Stock,
		IsActive:  input.IsActive,
	}, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit price")
	}
	if price.IsNegative() {
		return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeValidation, "unit price must be non-negative")
	}
	return money.Round(price), nil
}

func indexByID(items []Item) map[uuid.UUID]int {
	index := make(map[uuid.UUID]int, len(items))
	for i := range items {
		index[items[i].ID] = i
	}
	return index
}
