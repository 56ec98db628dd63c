package agents

import (
	"context"
	"fmt"

	"github.com/HitanshGithub/agentic-finance-ai/internal/llm"
	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

// ExpenseAgent analyzes spending patterns. The breakdown itself is delegated
// to the model; locally only the total is computed.
type ExpenseAgent struct {
	llm llm.Client
}

// NewExpenseAgent initializes the expense analysis agent.
func NewExpenseAgent(client llm.Client) *ExpenseAgent {
	return &ExpenseAgent{llm: client}
}

// Run produces a narrative expense analysis for the given expenses.
func (a *ExpenseAgent) Run(ctx context.Context, expenses []models.Expense) (string, error) {
	prompt := fmt.Sprintf(`You are a financial analyst specializing in personal expense analysis.

**Expenses to analyze:**
%s

**Total Spending:** %s

**Your task:**
Provide a comprehensive expense analysis including:

1. **Total Spending Summary** - Total amount and what it represents
2. **Category-wise Breakdown** - Use a clear table format with Category, Amount, and Percentage
3. **Key Insights** - 3-5 important observations about spending patterns

**Formatting rules:**
- Use the ₹ symbol for all currency amounts
- Format numbers with commas (e.g., ₹10,000)
- Create a markdown table for the breakdown
- Use bullet points for insights
- Be specific and actionable

Analyze the expenses:
`, formatExpenseLines(expenses), formatINR(totalAmount(expenses)))

	return a.llm.Generate(ctx, prompt)
}
