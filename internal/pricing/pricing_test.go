package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailcore/pos-register-backend/internal/cart"
	"github.com/retailcore/pos-register-backend/pkg/money"
)

func line(unitPrice string, qty int) cart.Line {
	price := decimal.RequireFromString(unitPrice)
	return cart.Line{
		ItemID:    uuid.New(),
		UnitPrice: price,
		Quantity:  qty,
		LineTotal: money.Line(price, qty),
	}
}

func TestPriceWorkedExample(t *testing.T) {
	// item at 100 added three times, 18% tax
	lines := []cart.Line{line("100", 3)}
	totals := Price(lines, decimal.RequireFromString("0.18"))

	if !totals.Subtotal.Equal(decimal.RequireFromString("300")) {
		t.Fatalf("subtotal = %s, want 300", totals.Subtotal)
	}
	if !totals.Tax.Equal(decimal.RequireFromString("54")) {
		t.Fatalf("tax = %s, want 54", totals.Tax)
	}
	if !totals.Total.Equal(decimal.RequireFromString("354")) {
		t.Fatalf("total = %s, want 354", totals.Total)
	}
}

func TestPriceIdentityHolds(t *testing.T) {
	cases := [][]cart.Line{
		{},
		{line("0.01", 1)},
		{line("19.99", 3), line("0.05", 7)},
		{line("123.45", 2), line("6.78", 9), line("0.99", 13)},
	}
	rates := []string{"0", "0.07", "0.18", "0.21"}

	for _, lines := range cases {
		for _, rate := range rates {
			totals := Price(lines, decimal.RequireFromString(rate))
			if !totals.Subtotal.Add(totals.Tax).Equal(totals.Total) {
				t.Fatalf("rate %s: %s + %s != %s", rate, totals.Subtotal, totals.Tax, totals.Total)
			}
		}
	}
}

func TestPriceIsPure(t *testing.T) {
	lines := []cart.Line{line("19.99", 3)}
	rate := decimal.RequireFromString("0.18")

	first := Price(lines, rate)
	second := Price(lines, rate)
	if !first.Total.Equal(second.Total) || !first.Tax.Equal(second.Tax) || !first.Subtotal.Equal(second.Subtotal) {
		t.Fatal("Price must be deterministic for identical input")
	}
}

func TestPriceRoundsTax(t *testing.T) {
	// 19.99 * 0.18 = 3.5982 -> 3.6
	totals := Price([]cart.Line{line("19.99", 1)}, decimal.RequireFromString("0.18"))
	if !totals.Tax.Equal(decimal.RequireFromString("3.6")) {
		t.Fatalf("tax = %s, want 3.6", totals.Tax)
	}
	if !totals.Total.Equal(decimal.RequireFromString("23.59")) {
		t.Fatalf("total = %s, want 23.59", totals.Total)
	}
}

func TestPriceEmptyCart(t *testing.T) {
	totals := Price(nil, decimal.RequireFromString("0.18"))
	if !totals.Total.IsZero() || !totals.Subtotal.IsZero() || !totals.Tax.IsZero() {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}
