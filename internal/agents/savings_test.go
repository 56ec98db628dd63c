package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

func TestFeasibility(t *testing.T) {
	goal := models.Goal{Name: "Emergency Fund", Target: 10000, Current: 4000}

	tests := []struct {
		name         string
		monthly      float64
		wantMonths   interface{}
		wantFeasible bool
	}{
		{name: "no savings", monthly: 0, wantMonths: "N/A", wantFeasible: false},
		{name: "reachable", monthly: 500, wantMonths: 12.0, wantFeasible: true},
		{name: "too slow", monthly: 200, wantMonths: 30.0, wantFeasible: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			report := Feasibility(goal, tc.monthly)
			if report.Remaining != 6000 {
				t.Errorf("expected remaining 6000, got %v", report.Remaining)
			}
			if report.MonthsNeeded != tc.wantMonths {
				t.Errorf("expected months %v, got %v", tc.wantMonths, report.MonthsNeeded)
			}
			if report.Feasible != tc.wantFeasible {
				t.Errorf("expected feasible=%v, got %v", tc.wantFeasible, report.Feasible)
			}
		})
	}
}

func TestSavingsSuggestionsPromptContext(t *testing.T) {
	client := &fakeLLM{fn: func(string) (string, error) { return "tips", nil }}
	agent := NewSavingsAgent(client)

	goal := models.Goal{Name: "Vacation", Target: 50000, Current: 10000, Deadline: "2026-12-31"}
	expenses := []models.Expense{
		{Category: "Food", Amount: 8000},
		{Category: "Rent", Amount: 15000},
	}

	out, err := agent.Suggestions(context.Background(), goal, 60000, expenses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "tips" {
		t.Errorf("unexpected output: %q", out)
	}

	prompt := client.prompts[0]
	for _, want := range []string{
		"Vacation", "₹50,000", "₹10,000", "20.0% complete", "₹40,000",
		"2026-12-31", "₹60,000", "Food: ₹8,000", "Rent: ₹15,000",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSavingsSuggestionsWithoutExpenses(t *testing.T) {
	client := &fakeLLM{fn: func(string) (string, error) { return "tips", nil }}
	agent := NewSavingsAgent(client)

	if _, err := agent.Suggestions(context.Background(), models.Goal{Name: "Bike", Target: 1000}, 0, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prompt := client.prompts[0]
	if !strings.Contains(prompt, "Top Expenses: Not provided") {
		t.Error("prompt should mark missing expenses as not provided")
	}
	if !strings.Contains(prompt, "Deadline: Not set") {
		t.Error("prompt should mark missing deadline as not set")
	}
}
