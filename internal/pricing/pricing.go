// Package pricing computes cart totals. It is pure: the same lines and
// tax rate always produce the same totals, and nothing here touches
// persisted state.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/retailcore/pos-register-backend/internal/cart"
	"github.com/retailcore/pos-register-backend/pkg/money"
)

// Totals is the priced summary of a cart. Total is computed as
// Subtotal + Tax after each part is rounded, so the identity
// Subtotal + Tax == Total holds exactly.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Price sums the line totals, applies the fixed tax rate, and returns the
// rounded totals.
func Price(lines []cart.Line, taxRate decimal.Decimal) Totals {
	subtotal := money.Zero()
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal)
	}
	subtotal = money.Round(subtotal)
	tax := money.Round(subtotal.Mul(taxRate))
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
