// Package chat implements the conversational assistant: per-user transcripts,
// financial context building, and best-effort live data enrichment.
package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/HitanshGithub/agentic-finance-ai/internal/llm"
	"github.com/HitanshGithub/agentic-finance-ai/internal/market"
	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

// Transcript turns older than this window are not fed back into the prompt.
const historyWindow = 10

// Store persists chat turns independently of the in-memory transcript.
type Store interface {
	AppendChatMessage(userID string, msg models.ChatMessage) error
	ChatHistory(userID string, limit int) ([]models.ChatMessage, error)
}

// Orchestrator answers chat messages. Transcripts are keyed by user ID so
// concurrent callers never see each other's conversations.
type Orchestrator struct {
	llm    llm.Client
	market *market.Service
	store  Store
	log    *logrus.Logger

	mu          sync.Mutex
	transcripts map[string][]models.ChatMessage
}

// NewOrchestrator initializes the chat orchestrator.
func NewOrchestrator(client llm.Client, market *market.Service, store Store, log *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		llm:         client,
		market:      market,
		store:       store,
		log:         log,
		transcripts: make(map[string][]models.ChatMessage),
	}
}

// Chat processes a user message and returns the assistant response. Live
// market data is fetched best-effort and embedded; a fetch failure degrades
// the answer, never the request.
func (o *Orchestrator) Chat(ctx context.Context, userID, message string, fctx models.ChatContext) (string, error) {
	userMsg := models.ChatMessage{Role: models.RoleUser, Content: message, Timestamp: time.Now()}
	o.append(userID, userMsg)
	o.persist(userID, userMsg)

	contextSummary := BuildContextSummary(fctx)
	history := o.historyString(userID)
	liveData := o.market.Summary(ctx)

	prompt := buildPrompt(message, contextSummary, history, liveData)

	response, err := o.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat generation failed: %w", err)
	}

	assistantMsg := models.ChatMessage{Role: models.RoleAssistant, Content: response, Timestamp: time.Now()}
	o.append(userID, assistantMsg)
	o.persist(userID, assistantMsg)

	return response, nil
}

// ClearHistory resets the user's in-memory transcript. Persisted history is
// untouched; deleting it is a separate store operation.
func (o *Orchestrator) ClearHistory(userID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.transcripts, userID)
}

// History returns persisted chat turns in chronological order. Without a
// store there is no persisted history.
func (o *Orchestrator) History(userID string, limit int) ([]models.ChatMessage, error) {
	if o.store == nil {
		return nil, nil
	}
	return o.store.ChatHistory(userID, limit)
}

func (o *Orchestrator) append(userID string, msg models.ChatMessage) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transcripts[userID] = append(o.transcripts[userID], msg)
}

func (o *Orchestrator) persist(userID string, msg models.ChatMessage) {
	if o.store == nil {
		return
	}
	if err := o.store.AppendChatMessage(userID, msg); err != nil {
		o.log.Errorf("failed to persist chat message for user %s: %v", userID, err)
	}
}

// historyString renders the prior turns of the transcript, excluding the
// just-appended current message. Returns "" when there are no prior turns.
func (o *Orchestrator) historyString(userID string) string {
	o.mu.Lock()
	defer o.mu.Unlock()

	transcript := o.transcripts[userID]
	if len(transcript) <= 1 {
		return ""
	}

	start := len(transcript) - historyWindow
	if start < 0 {
		start = 0
	}
	prior := transcript[start : len(transcript)-1]

	lines := make([]string, 0, len(prior))
	for _, msg := range prior {
		label := "User"
		if msg.Role == models.RoleAssistant {
			label = "Assistant"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, msg.Content))
	}
	return strings.Join(lines, "\n")
}

// BuildContextSummary renders the user's financial context for the prompt.
// Absent fields are omitted; with no fields at all the fixed no-context
// sentence is returned.
func BuildContextSummary(fctx models.ChatContext) string {
	parts := []string{"USER'S FINANCIAL CONTEXT:"}

	if fctx.Income > 0 {
		parts = append(parts, fmt.Sprintf("- Monthly Income: ₹%.0f", fctx.Income))
	}

	if len(fctx.Expenses) > 0 {
		var total float64
		for _, exp := range fctx.Expenses {
			total += exp.Amount
		}
		parts = append(parts, fmt.Sprintf("- Total Expenses: ₹%.0f (top categories: %s)",
			total, strings.Join(topCategories(fctx.Expenses, 3), ", ")))
	}

	if len(fctx.Goals) > 0 {
		names := make([]string, 0, 3)
		for i, goal := range fctx.Goals {
			if i == 3 {
				break
			}
			names = append(names, fmt.Sprintf("%s (Target: ₹%.0f)", goal.Name, goal.Target))
		}
		parts = append(parts, fmt.Sprintf("- Savings Goals: %s", strings.Join(names, ", ")))
	}

	if fctx.HasAnalysis() {
		parts = append(parts, "- A previous financial analysis is available.")
	}

	if len(parts) == 1 {
		return "No financial context available."
	}
	return strings.Join(parts, "\n")
}

// topCategories returns up to n expense categories by amount descending.
func topCategories(expenses []models.Expense, n int) []string {
	sorted := make([]models.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	categories := make([]string, 0, n)
	for _, exp := range sorted[:n] {
		categories = append(categories, exp.Category)
	}
	return categories
}

func buildPrompt(message, contextSummary, history, liveData string) string {
	var sb strings.Builder

	sb.WriteString("You are a helpful financial advisor.\n\n")
	sb.WriteString(fmt.Sprintf("LIVE MARKET DATA:\n%s\n\n", liveData))
	sb.WriteString(fmt.Sprintf("OPTIONAL BACKGROUND INFO (only use if specific to the question):\n%s\n\n", contextSummary))

	if history != "" {
		sb.WriteString(fmt.Sprintf("CONVERSATION SO FAR:\n%s\n\n", history))
	}

	sb.WriteString(fmt.Sprintf("USER QUESTION: %s\n\n", message))
	sb.WriteString(`**STRICT INSTRUCTIONS**:
1. **Analyze Intent**:
   - **Greeting/Small Talk**: Respond naturally. Do NOT mention crypto, stocks, or goals.
   - **General Market Question** (e.g., "best sectors", "gold price", "market trends"): Answer using ONLY the LIVE DATA. Do NOT mention the user's specific goals unless the user explicitly names them in the current question.
   - **Personal Advice**: If the user asks "how do I save" or "for my goal", THEN use the Background Info.

2. **Content Rules**:
   - Reference specific numbers from LIVE DATA when answering market questions.
   - ALWAYS use Indian Rupees (₹).
   - If the data is insufficient, give general advice and say so.

3. Keep response concise (under 150 words).

Your response:`)

	return sb.String()
}
