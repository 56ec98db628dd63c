package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/HitanshGithub/agentic-finance-ai/internal/llm"
	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

// Goals taking longer than this at the current savings rate are reported as
// not feasible.
const feasibleMonthsLimit = 24

// SavingsAgent gives personalized advice for reaching a savings goal.
type SavingsAgent struct {
	llm llm.Client
}

// NewSavingsAgent initializes the savings goal agent.
func NewSavingsAgent(client llm.Client) *SavingsAgent {
	return &SavingsAgent{llm: client}
}

// Suggestions returns tips for reaching the goal faster, using income and the
// top expenses as context when available.
func (a *SavingsAgent) Suggestions(ctx context.Context, goal models.Goal, income float64, expenses []models.Expense) (string, error) {
	remaining := goal.Target - goal.Current
	progress := 0.0
	if goal.Target > 0 {
		progress = goal.Current / goal.Target * 100
	}

	expenseSummary := "Not provided"
	if len(expenses) > 0 {
		parts := make([]string, 0, 5)
		for i, exp := range expenses {
			if i == 5 {
				break
			}
			parts = append(parts, fmt.Sprintf("%s: %s", exp.Category, formatINR(exp.Amount)))
		}
		expenseSummary = strings.Join(parts, ", ")
	}

	deadline := goal.Deadline
	if deadline == "" {
		deadline = "Not set"
	}

	prompt := fmt.Sprintf(`You are a personal finance advisor for an Indian user. A user wants to save for: %s

Goal Details:
- Target Amount: %s
- Current Savings: %s (%.1f%% complete)
- Remaining: %s
- Deadline: %s

User's Monthly Income: %s
Top Expenses: %s

Provide 3-4 specific, actionable tips to help them reach this goal faster. Be encouraging and practical.
IMPORTANT: All monetary values are in Indian Rupees (₹). Do NOT mention Dollars ($).
Keep response under 150 words.`,
		goal.Name, formatINR(goal.Target), formatINR(goal.Current), progress,
		formatINR(remaining), deadline, formatINR(income), expenseSummary)

	return a.llm.Generate(ctx, prompt)
}

// Feasibility checks whether the goal is reachable at the given monthly
// savings rate. With no savings the months needed are reported as "N/A".
func Feasibility(goal models.Goal, monthlySavings float64) models.FeasibilityReport {
	remaining := goal.Target - goal.Current

	report := models.FeasibilityReport{
		Remaining:      remaining,
		MonthlySavings: monthlySavings,
	}
	if monthlySavings <= 0 {
		report.MonthsNeeded = "N/A"
		report.Feasible = false
		return report
	}

	months := remaining / monthlySavings
	report.MonthsNeeded = months
	report.Feasible = months < feasibleMonthsLimit
	return report
}
