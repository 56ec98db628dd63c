package models

import (
	"encoding/json"
	"time"
)

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single conversation turn.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatContext is the optional financial context attached to a chat request.
type ChatContext struct {
	Income       float64         `json:"income,omitempty"`
	Expenses     []Expense       `json:"expenses,omitempty"`
	Goals        []Goal          `json:"goals,omitempty"`
	LastAnalysis json.RawMessage `json:"last_analysis,omitempty"`
}

// HasAnalysis reports whether a prior analysis was attached.
func (c ChatContext) HasAnalysis() bool {
	return len(c.LastAnalysis) > 0 && string(c.LastAnalysis) != "null"
}
