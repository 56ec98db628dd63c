package models

import (
	"fmt"
	"time"
)

// Expense is a single spending record supplied by the client.
type Expense struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date,omitempty"`
}

// AnalysisRequest is the input to the agent pipeline.
type AnalysisRequest struct {
	Income   float64   `json:"income"`
	Profile  string    `json:"profile"`
	Expenses []Expense `json:"expenses"`
}

// Validate rejects malformed requests before any agent runs.
func (r AnalysisRequest) Validate() error {
	if r.Income < 0 {
		return fmt.Errorf("income must not be negative")
	}
	if r.Profile == "" {
		return fmt.Errorf("profile is required")
	}
	if len(r.Expenses) == 0 {
		return fmt.Errorf("at least one expense is required")
	}
	for i, exp := range r.Expenses {
		if exp.Amount < 0 {
			return fmt.Errorf("expense %d: amount must not be negative", i)
		}
	}
	return nil
}

// Report is the combined output of the agent pipeline. It is either fully
// populated or carries an error; never both.
type Report struct {
	ExpenseAnalysis string `json:"expense_analysis,omitempty"`
	BudgetPlan      string `json:"budget_plan,omitempty"`
	InvestmentPlan  string `json:"investment_plan,omitempty"`
	FraudAlerts     string `json:"fraud_alerts,omitempty"`
	Error           string `json:"error,omitempty"`
	Details         string `json:"details,omitempty"`
}

// Failed reports whether the pipeline produced an error instead of a report.
func (r Report) Failed() bool {
	return r.Error != ""
}

// Analysis is a persisted pipeline run.
type Analysis struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Income    float64   `json:"income"`
	Profile   string    `json:"profile"`
	Expenses  []Expense `json:"expenses"`
	Result    Report    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}
