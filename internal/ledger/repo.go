package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/retailcore/pos-register-backend/pkg/enums"
	pkgerrors "github.com/retailcore/pos-register-backend/pkg/errors"
	"github.com/retailcore/pos-register-backend/pkg/kvstore"
)

// Repository manages persistence for the sales ledger. Entries are stored
// in append order; the only rewrite path is the refund status change.
type Repository interface {
	List(ctx context.Context) ([]Transaction, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Append(ctx context.Context, tx Transaction) error
	SetStatus(ctx context.Context, id uuid.UUID, status enums.TransactionStatus) error
}

type repository struct {
	store kvstore.Store
	mu    sync.Mutex
}

// NewRepository returns a ledger repository bound to the provided store.
func NewRepository(store kvstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) load(ctx context.Context) ([]Transaction, error) {
	payload, err := r.store.Read(ctx, kvstore.NamespaceSales)
	if errors.Is(err, kvstore.ErrNamespaceEmpty) {
		return []Transaction{}, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read sales namespace")
	}
	var transactions []Transaction
	if err := json.Unmarshal(payload, &transactions); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode sales namespace")
	}
	return transactions, nil
}

func (r *repository) persist(ctx context.Context, transactions []Transaction) error {
	payload, err := json.Marshal(transactions)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode sales namespace")
	}
	if err := r.store.Write(ctx, kvstore.NamespaceSales, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write sales namespace")
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transactions, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range transactions {
		if transactions[i].ID == id {
			tx := transactions[i]
			return &tx, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
}

func (r *repository) Append(ctx context.Context, tx Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	transactions, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.persist(ctx, append(transactions, tx))
}

func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, status enums.TransactionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	transactions, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range transactions {
		if transactions[i].ID == id {
			transactions[i].Status = status
			return r.persist(ctx, transactions)
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
}
