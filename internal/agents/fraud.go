package agents

import (
	"context"
	"fmt"

	"github.com/HitanshGithub/agentic-finance-ai/internal/llm"
	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

// FraudAgent flags anomalous transactions in natural language.
type FraudAgent struct {
	llm llm.Client
}

// NewFraudAgent initializes the fraud detection agent.
func NewFraudAgent(client llm.Client) *FraudAgent {
	return &FraudAgent{llm: client}
}

// Run produces a plain-language anomaly review of the given expenses.
func (a *FraudAgent) Run(ctx context.Context, expenses []models.Expense) (string, error) {
	prompt := fmt.Sprintf(`You are a financial fraud detection expert. Analyze the following transactions for anomalies or potential fraud.

**Transactions to analyze:**
%s

**Your task:**
1. Identify any suspicious transactions
2. Explain why each flagged transaction is concerning
3. Provide actionable recommendations

**Important formatting rules:**
- Do NOT output any JSON, code, or technical data structures
- Write in clear, human-readable sentences
- Use bullet points for clarity
- Mention specific amounts with the ₹ symbol
- If a transaction seems suspicious, explain in plain English why

**Example of good output:**
"The **Food** expense of **₹1,000** is unusually high compared to typical grocery spending. This could indicate:
- A large gathering or event
- Possible unauthorized use of payment method
- A data entry error

**Recommendation:** Review this transaction and verify it was authorized."

Now analyze the transactions above:
`, formatExpenseLines(expenses))

	return a.llm.Generate(ctx, prompt)
}
