package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailcore/pos-register-backend/internal/cart"
	"github.com/retailcore/pos-register-backend/internal/catalog"
	"github.com/retailcore/pos-register-backend/internal/ledger"
	"github.com/retailcore/pos-register-backend/internal/pricing"
	"github.com/retailcore/pos-register-backend/pkg/enums"
	pkgerrors "github.com/retailcore/pos-register-backend/pkg/errors"
	"github.com/retailcore/pos-register-backend/pkg/logger"
	"github.com/retailcore/pos-register-backend/pkg/metrics"
	"github.com/retailcore/pos-register-backend/pkg/money"
)

type cartAccumulator interface {
	Get(ctx context.Context) cart.Cart
	Clear(ctx context.Context)
}

type stockManager interface {
	DecrementAll(ctx context.Context, changes []catalog.StockChange) error
	IncrementAll(ctx context.Context, changes []catalog.StockChange) error
}

type salesLedger interface {
	Append(ctx context.Context, tx ledger.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.TransactionStatus) error
}

// Service finalizes the open cart into an immutable ledger entry.
type Service interface {
	Commit(ctx context.Context, input CommitInput) (*ledger.Transaction, error)
	Refund(ctx context.Context, transactionID uuid.UUID) (*ledger.Transaction, error)
}

// CommitInput captures the payment data a commit requires.
type CommitInput struct {
	PaymentMethod enums.PaymentMethod
	Tendered      decimal.Decimal
}

type service struct {
	cart    cartAccumulator
	catalog stockManager
	ledger  salesLedger
	taxRate decimal.Decimal
	logg    *logger.Logger
	metrics *metrics.CheckoutMetrics
}

// NewService builds the checkout service.
func NewService(
	cartSvc cartAccumulator,
	catalogSvc stockManager,
	ledgerSvc salesLedger,
	taxRate decimal.Decimal,
	logg *logger.Logger,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if ledgerSvc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate must be non-negative")
	}
	return &service{
		cart:    cartSvc,
		catalog: catalogSvc,
		ledger:  ledgerSvc,
		taxRate: taxRate,
		logg:    logg,
		metrics: checkoutMetrics,
	}, nil
}

// Commit validates payment, applies the stock decrement as one batch,
// appends the transaction, and clears the cart. A failure at any step
// leaves catalog, cart, and ledger as they were before the attempt.
func (s *service) Commit(ctx context.Context, input CommitInput) (*ledger.Transaction, error) {
	tx, err := s.commit(ctx, input)
	if err != nil {
		s.metrics.IncFailed(string(pkgerrors.As(err).Code()))
		return nil, err
	}
	return tx, nil
}

func (s *service) commit(ctx context.Context, input CommitInput) (*ledger.Transaction, error) {
	started := time.Now()

	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.PaymentMethod))
	}

	snapshot := s.cart.Get(ctx)
	if snapshot.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cannot commit an empty cart")
	}

	totals := pricing.Price(snapshot.Lines, s.taxRate)

	tendered := money.Round(input.Tendered)
	change := money.Zero()
	if input.PaymentMethod == enums.PaymentMethodCash {
		if tendered.LessThan(totals.Total) {
			return nil, pkgerrors.New(pkgerrors.CodeInsufficientPayment, "tendered amount is below the total").
				WithDetails(map[string]any{
					"tendered": tendered.String(),
					"total":    totals.Total.String(),
				})
		}
		change = tendered.Sub(totals.Total)
	} else {
		// non-cash tenders settle exactly; the input amount is ignored
		tendered = totals.Total
	}

	changes := stockChanges(snapshot.Lines)
	if err := s.catalog.DecrementAll(ctx, changes); err != nil {
		return nil, err
	}

	tx := ledger.Transaction{
		ID:            uuid.New(),
		Timestamp:     time.Now().UTC(),
		CustomerID:    snapshot.CustomerID,
		Lines:         snapshot.Lines,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: input.PaymentMethod,
		Tendered:      tendered,
		Change:        change,
		Status:        enums.TransactionStatusCompleted,
	}

	if err := s.ledger.Append(ctx, tx); err != nil {
		// undo the stock decrement so the failed commit is invisible
		if restockErr := s.catalog.IncrementAll(ctx, changes); restockErr != nil && s.logg != nil {
			s.logg.Error(ctx, "checkout.restock_failed", restockErr)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append transaction")
	}

	s.cart.Clear(ctx)

	s.metrics.ObserveCommit(string(input.PaymentMethod), time.Since(started))
	s.metrics.IncCommitted()
	if s.logg != nil {
		logCtx := s.logg.WithTransactionID(ctx, tx.ID.String())
		s.logg.Info(logCtx, "checkout.committed")
	}
	return &tx, nil
}

// Refund restocks a completed transaction's lines and marks the ledger
// entry refunded.
func (s *service) Refund(ctx context.Context, transactionID uuid.UUID) (*ledger.Transaction, error) {
	if transactionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id is required")
	}

	tx, err := s.ledger.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx.Status != enums.TransactionStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("transaction is %s, only completed sales can be refunded", tx.Status))
	}

	changes := stockChanges(tx.Lines)
	if err := s.catalog.IncrementAll(ctx, changes); err != nil {
		return nil, err
	}

	if err := s.ledger.SetStatus(ctx, transactionID, enums.TransactionStatusRefunded); err != nil {
		if undoErr := s.catalog.DecrementAll(ctx, changes); undoErr != nil && s.logg != nil {
			s.logg.Error(ctx, "checkout.refund_undo_failed", undoErr)
		}
		return nil, err
	}

	s.metrics.IncRefunded()
	if s.logg != nil {
		logCtx := s.logg.WithTransactionID(ctx, transactionID.String())
		s.logg.Info(logCtx, "checkout.refunded")
	}

	refunded := *tx
	refunded.Status = enums.TransactionStatusRefunded
	return &refunded, nil
}

func stockChanges(lines []cart.Line) []catalog.StockChange {
	changes := make([]catalog.StockChange, len(lines))
	for i, line := range lines {
		changes[i] = catalog.StockChange{ItemID: line.ItemID, Qty: line.Quantity}
	}
	return changes
}
