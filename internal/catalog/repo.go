package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	pkgerrors "github.com/retailcore/pos-register-backend/pkg/errors"
	"github.com/retailcore/pos-register-backend/pkg/kvstore"
)

// Repository manages persistence for catalog items. The whole item array
// is rewritten on every mutation; Mutate runs its closure under the
// repository lock so a read-modify-write cycle is never interleaved.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByCode(ctx context.Context, code string) (*Item, error)
	Mutate(ctx context.Context, fn func(items []Item) ([]Item, error)) error
}

type repository struct {
	store kvstore.Store
	mu    sync.Mutex
}

// NewRepository returns a catalog repository bound to the provided store.
func NewRepository(store kvstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) load(ctx context.Context) ([]Item, error) {
	payload, err := r.store.Read(ctx, kvstore.NamespaceProducts)
	if errors.Is(err, kvstore.ErrNamespaceEmpty) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read products namespace")
	}
	var items []Item
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode products namespace")
	}
	return items, nil
}

func (r *repository) persist(ctx context.Context, items []Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode products namespace")
	}
	if err := r.store.Write(ctx, kvstore.NamespaceProducts, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write products namespace")
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			item := items[i]
			return &item, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Code == code {
			item := items[i]
			return &item, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
}

func (r *repository) Mutate(ctx context.Context, fn func(items []Item) ([]Item, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return r.persist(ctx, next)
}
