package agents

import (
	"testing"

	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0"},
		{500, "₹500"},
		{1000, "₹1,000"},
		{10000, "₹10,000"},
		{1234567, "₹1,234,567"},
		{1234.5, "₹1,234.50"},
		{-25000, "₹-25,000"},
	}

	for _, tc := range tests {
		if got := formatINR(tc.amount); got != tc.want {
			t.Errorf("formatINR(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestFormatExpenseLines(t *testing.T) {
	got := formatExpenseLines([]models.Expense{
		{Category: "Food", Amount: 8000},
		{Category: "", Amount: 250},
	})
	want := "• Food: ₹8,000\n• Unknown: ₹250"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTotalAmount(t *testing.T) {
	total := totalAmount([]models.Expense{{Amount: 100}, {Amount: 250.5}})
	if total != 350.5 {
		t.Errorf("expected 350.5, got %v", total)
	}
}
