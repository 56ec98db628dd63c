package agents

import (
	"context"
	"fmt"

	"github.com/HitanshGithub/agentic-finance-ai/internal/llm"
)

// BudgetAgent builds a budget plan from the income and the expense analysis.
// The expense report is treated as opaque text, never parsed.
type BudgetAgent struct {
	llm llm.Client
}

// NewBudgetAgent initializes the budget planning agent.
func NewBudgetAgent(client llm.Client) *BudgetAgent {
	return &BudgetAgent{llm: client}
}

// Run produces a budget plan for the given income and expense report.
func (a *BudgetAgent) Run(ctx context.Context, income float64, expenseReport string) (string, error) {
	prompt := fmt.Sprintf(`You are a budget planning expert.

Income: %s

Expense report:
%s

Provide:
- Budget health
- Savings recommendation
- Spending reduction tips
`, formatINR(income), expenseReport)

	return a.llm.Generate(ctx, prompt)
}
