package models

import (
	"fmt"
	"time"
)

// Goal is a savings target. Current may exceed Target; no clamping is applied.
type Goal struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Target    float64   `json:"target"`
	Current   float64   `json:"current"`
	Deadline  string    `json:"deadline,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate rejects malformed goals at the boundary.
func (g Goal) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("name is required")
	}
	if g.Target <= 0 {
		return fmt.Errorf("target must be greater than zero")
	}
	if g.Current < 0 {
		return fmt.Errorf("current must not be negative")
	}
	if err := ValidateDeadline(g.Deadline); err != nil {
		return err
	}
	return nil
}

// ValidateDeadline accepts an empty deadline or an ISO date. The reminder
// sweep compares deadlines as strings, which only works for this format.
func ValidateDeadline(deadline string) error {
	if deadline == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", deadline); err != nil {
		return fmt.Errorf("deadline must be a YYYY-MM-DD date")
	}
	return nil
}

// GoalUpdate carries a partial update; nil fields are left untouched.
type GoalUpdate struct {
	Name     *string  `json:"name,omitempty"`
	Target   *float64 `json:"target,omitempty"`
	Current  *float64 `json:"current,omitempty"`
	Deadline *string  `json:"deadline,omitempty"`
}

// FeasibilityReport says whether a goal is reachable at the current savings
// rate. MonthsNeeded is "N/A" when no monthly savings are available.
type FeasibilityReport struct {
	Remaining      float64     `json:"remaining"`
	MonthlySavings float64     `json:"monthly_savings"`
	MonthsNeeded   interface{} `json:"months_needed"`
	Feasible       bool        `json:"feasible"`
}
