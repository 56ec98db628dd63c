package agents

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/HitanshGithub/agentic-finance-ai/internal/market"
	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

type fakeLLM struct {
	mu      sync.Mutex
	prompts []string
	fn      func(prompt string) (string, error)
}

func (f *fakeLLM) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.fn(prompt)
}

func (f *fakeLLM) promptContaining(marker string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.prompts {
		if strings.Contains(p, marker) {
			return p
		}
	}
	return ""
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testRequest() models.AnalysisRequest {
	return models.AnalysisRequest{
		Income:  50000,
		Profile: "moderate",
		Expenses: []models.Expense{
			{Category: "Food", Amount: 8000},
			{Category: "Rent", Amount: 15000},
		},
	}
}

func TestPipelineSuccessPopulatesAllSections(t *testing.T) {
	client := &fakeLLM{fn: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "expense analysis"):
			return "expense report", nil
		case strings.Contains(prompt, "budget planning expert"):
			return "budget report", nil
		case strings.Contains(prompt, "investment advisor"):
			return "investment report", nil
		case strings.Contains(prompt, "fraud detection expert"):
			return "fraud report", nil
		}
		return "", errors.New("unexpected prompt")
	}}
	pipeline := NewPipeline(client, market.NewService(testLogger()), testLogger())

	report := pipeline.Run(context.Background(), testRequest())

	if report.Failed() {
		t.Fatalf("unexpected failure: %s (%s)", report.Error, report.Details)
	}
	if report.ExpenseAnalysis != "expense report" {
		t.Errorf("unexpected expense analysis: %q", report.ExpenseAnalysis)
	}
	if report.BudgetPlan != "budget report" {
		t.Errorf("unexpected budget plan: %q", report.BudgetPlan)
	}
	if report.InvestmentPlan != "investment report" {
		t.Errorf("unexpected investment plan: %q", report.InvestmentPlan)
	}
	if report.FraudAlerts != "fraud report" {
		t.Errorf("unexpected fraud alerts: %q", report.FraudAlerts)
	}
}

func TestPipelineStageFailureWithholdsWholeReport(t *testing.T) {
	client := &fakeLLM{fn: func(prompt string) (string, error) {
		if strings.Contains(prompt, "budget planning expert") {
			return "", errors.New("model overloaded")
		}
		return "ok", nil
	}}
	pipeline := NewPipeline(client, market.NewService(testLogger()), testLogger())

	report := pipeline.Run(context.Background(), testRequest())

	if !report.Failed() {
		t.Fatal("expected failed report")
	}
	if report.Error != "Agent pipeline failed" {
		t.Errorf("unexpected error field: %q", report.Error)
	}
	if !strings.Contains(report.Details, "model overloaded") {
		t.Errorf("details should carry the cause, got %q", report.Details)
	}
	if report.ExpenseAnalysis != "" || report.BudgetPlan != "" ||
		report.InvestmentPlan != "" || report.FraudAlerts != "" {
		t.Errorf("partial results leaked into failed report: %+v", report)
	}
}

func TestPipelineFraudFailureFailsRun(t *testing.T) {
	client := &fakeLLM{fn: func(prompt string) (string, error) {
		if strings.Contains(prompt, "fraud detection expert") {
			return "", errors.New("fraud stage down")
		}
		return "ok", nil
	}}
	pipeline := NewPipeline(client, market.NewService(testLogger()), testLogger())

	report := pipeline.Run(context.Background(), testRequest())

	if !report.Failed() {
		t.Fatal("expected failed report")
	}
	if !strings.Contains(report.Details, "fraud stage down") {
		t.Errorf("details should carry the cause, got %q", report.Details)
	}
}

func TestPipelineChainsStageOutputs(t *testing.T) {
	client := &fakeLLM{fn: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "expense analysis"):
			return "EXPENSE-OUTPUT", nil
		case strings.Contains(prompt, "budget planning expert"):
			return "BUDGET-OUTPUT", nil
		}
		return "ok", nil
	}}
	pipeline := NewPipeline(client, market.NewService(testLogger()), testLogger())

	pipeline.Run(context.Background(), testRequest())

	budgetPrompt := client.promptContaining("budget planning expert")
	if !strings.Contains(budgetPrompt, "EXPENSE-OUTPUT") {
		t.Error("budget prompt should embed the expense stage output")
	}
	investmentPrompt := client.promptContaining("investment advisor")
	if !strings.Contains(investmentPrompt, "BUDGET-OUTPUT") {
		t.Error("investment prompt should embed the budget stage output")
	}
}

func TestInvestmentAgentRunsWithoutMarketData(t *testing.T) {
	client := &fakeLLM{fn: func(string) (string, error) { return "ok", nil }}
	agent := NewInvestmentAgent(client, market.NewService(testLogger()))

	if _, err := agent.Run(context.Background(), "conservative", "budget"); err != nil {
		t.Fatalf("investment agent should run without market data: %v", err)
	}
	prompt := client.promptContaining("investment advisor")
	if !strings.Contains(prompt, "[Live market data unavailable right now]") {
		t.Error("prompt should state that live data is unavailable")
	}
}
