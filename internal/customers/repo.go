package customers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	pkgerrors "github.com/retailcore/pos-register-backend/pkg/errors"
	"github.com/retailcore/pos-register-backend/pkg/kvstore"
)

// Repository manages persistence for the customer directory.
type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	Append(ctx context.Context, customer Customer) error
}

type repository struct {
	store kvstore.Store
	mu    sync.Mutex
}

// NewRepository returns a customer repository bound to the provided store.
func NewRepository(store kvstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) load(ctx context.Context) ([]Customer, error) {
	payload, err := r.store.Read(ctx, kvstore.NamespaceCustomers)
	if errors.Is(err, kvstore.ErrNamespaceEmpty) {
		return []Customer{}, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read customers namespace")
	}
	var customers []Customer
	if err := json.Unmarshal(payload, &customers); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode customers namespace")
	}
	return customers, nil
}

func (r *repository) List(ctx context.Context) ([]Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customers, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			customer := customers[i]
			return &customer, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
}

func (r *repository) Append(ctx context.Context, customer Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	customers, err := r.load(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(append(customers, customer))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode customers namespace")
	}
	if err := r.store.Write(ctx, kvstore.NamespaceCustomers, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write customers namespace")
	}
	return nil
}
