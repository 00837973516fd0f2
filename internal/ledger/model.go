package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailcore/pos-register-backend/internal/cart"
	"github.com/retailcore/pos-register-backend/pkg/enums"
)

// Transaction is an immutable record of a finalized sale. Lines are a
// snapshot of the cart at commit time, decoupled from the live catalog.
type Transaction struct {
	ID            uuid.UUID               `json:"id"`
	Timestamp     time.Time               `json:"timestamp"`
	CustomerID    *uuid.UUID              `json:"customer_id,omitempty"`
	Lines         []cart.Line             `json:"lines"`
	Subtotal      decimal.Decimal         `json:"subtotal"`
	Tax           decimal.Decimal         `json:"tax"`
	Total         decimal.Decimal         `json:"total"`
	PaymentMethod enums.PaymentMethod     `json:"payment_method"`
	Tendered      decimal.Decimal         `json:"tendered"`
	Change        decimal.Decimal         `json:"change"`
	Status        enums.TransactionStatus `json:"status"`
}
