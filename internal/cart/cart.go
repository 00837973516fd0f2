package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one cart entry. Name, code, and unit price are snapshots taken
// when the item was first added, so later catalog edits do not reprice an
// open cart.
type Line struct {
	ItemID    uuid.UUID       `json:"item_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Cart is the register's single in-progress transaction. Line order is
// insertion order, kept for display only.
type Cart struct {
	Lines      []Line     `json:"lines"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) clone() Cart {
	out := Cart{Lines: make([]Line, len(c.Lines))}
	copy(out.Lines, c.Lines)
	if c.CustomerID != nil {
		id := *c.CustomerID
		out.CustomerID = &id
	}
	return out
}

// MutationResult reports the cart after a mutation. Clamped is set when a
// requested quantity was capped at the catalog's on-hand stock instead of
// being applied as asked.
type MutationResult struct {
	Cart    Cart
	Clamped bool
}
