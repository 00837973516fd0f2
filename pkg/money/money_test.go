package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRoundHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10"},
		{"54.00", "54"},
		{"0.125", "0.13"},
		{"-0.125", "-0.13"},
	}
	for _, tt := range tests {
		got := Round(decimal.RequireFromString(tt.in))
		if got.String() != tt.want {
			t.Fatalf("Round(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLine(t *testing.T) {
	unit := decimal.RequireFromString("100")
	if got := Line(unit, 3); !got.Equal(decimal.RequireFromString("300")) {
		t.Fatalf("Line(100, 3) = %s", got)
	}
	unit = decimal.RequireFromString("19.995")
	if got := Line(unit, 2); !got.Equal(decimal.RequireFromString("39.99")) {
		t.Fatalf("Line(19.995, 2) = %s", got)
	}
}
