package agents

import (
	"context"
	"fmt"

	"github.com/HitanshGithub/agentic-finance-ai/internal/llm"
	"github.com/HitanshGithub/agentic-finance-ai/internal/market"
)

// InvestmentAgent advises on allocation using live market data. The market
// fetch is best-effort; when sources are down the prompt says so and the
// agent still runs.
type InvestmentAgent struct {
	llm    llm.Client
	market *market.Service
}

// NewInvestmentAgent initializes the investment advisory agent.
func NewInvestmentAgent(client llm.Client, market *market.Service) *InvestmentAgent {
	return &InvestmentAgent{llm: client, market: market}
}

// Run produces investment guidance for the given risk profile and budget plan.
func (a *InvestmentAgent) Run(ctx context.Context, profile, budgetReport string) (string, error) {
	marketData := a.market.Summary(ctx)

	prompt := fmt.Sprintf(`You are an investment advisor with access to REAL current market data.

LIVE MARKET DATA (fetched via HTTP just now):
%s

---

USER PROFILE: %s

BUDGET REPORT:
%s

Based on the ACTUAL LIVE market data above, provide:
1. Investment allocation recommendations with specific percentages
2. Risk assessment referencing current market volatility from the data
3. Short-term opportunities (next 3-6 months) based on current trends
4. Long-term strategy (1-5 years)

IMPORTANT:
- Reference the actual numbers from the live data in your response.
- If the live data is marked unavailable, say so and give general guidance instead.
- All investment values should be in Indian Rupees (₹).
Keep response under 300 words.`, marketData, profile, budgetReport)

	return a.llm.Generate(ctx, prompt)
}
