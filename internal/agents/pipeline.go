package agents

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/HitanshGithub/agentic-finance-ai/internal/llm"
	"github.com/HitanshGithub/agentic-finance-ai/internal/market"
	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

// Pipeline chains the analysis agents into a combined report. The expense,
// budget and investment stages form a true dependency chain; the fraud stage
// depends only on the raw expenses and runs on its own branch, joined before
// the report is assembled. Any stage failure withholds the whole report.
type Pipeline struct {
	expense    *ExpenseAgent
	budget     *BudgetAgent
	investment *InvestmentAgent
	fraud      *FraudAgent
	log        *logrus.Logger
}

// NewPipeline initializes the agent pipeline.
func NewPipeline(client llm.Client, market *market.Service, log *logrus.Logger) *Pipeline {
	return &Pipeline{
		expense:    NewExpenseAgent(client),
		budget:     NewBudgetAgent(client),
		investment: NewInvestmentAgent(client, market),
		fraud:      NewFraudAgent(client),
		log:        log,
	}
}

// Run executes the pipeline and returns either a fully populated report or an
// error report. Partial results are never surfaced.
func (p *Pipeline) Run(ctx context.Context, req models.AnalysisRequest) models.Report {
	type fraudResult struct {
		text string
		err  error
	}
	fraudCh := make(chan fraudResult, 1)
	go func() {
		text, err := p.fraud.Run(ctx, req.Expenses)
		fraudCh <- fraudResult{text: text, err: err}
	}()

	expenseReport, err := p.expense.Run(ctx, req.Expenses)
	if err != nil {
		p.log.Errorf("expense agent failed: %v", err)
		return failedReport(err)
	}

	budgetReport, err := p.budget.Run(ctx, req.Income, expenseReport)
	if err != nil {
		p.log.Errorf("budget agent failed: %v", err)
		return failedReport(err)
	}

	investmentReport, err := p.investment.Run(ctx, req.Profile, budgetReport)
	if err != nil {
		p.log.Errorf("investment agent failed: %v", err)
		return failedReport(err)
	}

	fraud := <-fraudCh
	if fraud.err != nil {
		p.log.Errorf("fraud agent failed: %v", fraud.err)
		return failedReport(fraud.err)
	}

	return models.Report{
		ExpenseAnalysis: expenseReport,
		BudgetPlan:      budgetReport,
		InvestmentPlan:  investmentReport,
		FraudAlerts:     fraud.text,
	}
}

func failedReport(err error) models.Report {
	return models.Report{
		Error:   "Agent pipeline failed",
		Details: err.Error(),
	}
}
