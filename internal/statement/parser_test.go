package statement

import (
	"reflect"
	"strings"
	"testing"

	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

func TestParseExpenses(t *testing.T) {
	text := strings.Join([]string{
		"Statement for March",
		"Rent Payment 15,000",
		"Grocery Store 2,500",
		"Monthly Salary Credit 80,000",
		"Coffee 150",
		"no amount on this line",
		"",
	}, "\n")

	got := ParseExpenses(text)

	want := []models.Expense{
		{Category: "Rent Payment", Amount: 15000},
		{Category: "Grocery Store", Amount: 2500},
		{Category: "Coffee", Amount: 150},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseExpensesHandlesCarriageReturns(t *testing.T) {
	got := ParseExpenses("Internet Bill 1,200\r\nPhone Bill 500\r\n")

	if len(got) != 2 {
		t.Fatalf("expected 2 expenses, got %+v", got)
	}
	if got[0].Category != "Internet Bill" || got[0].Amount != 1200 {
		t.Errorf("unexpected first expense: %+v", got[0])
	}
}

func TestParseExpensesEmptyInput(t *testing.T) {
	if got := ParseExpenses(""); got != nil {
		t.Errorf("expected no expenses, got %+v", got)
	}
}

func TestPlainTextExtractor(t *testing.T) {
	text, err := PlainTextExtractor{}.Extract(strings.NewReader("Rent 10,000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Rent 10,000" {
		t.Errorf("unexpected text: %q", text)
	}
}
