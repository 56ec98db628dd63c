package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/HitanshGithub/agentic-finance-ai/internal/market"
	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

type fakeLLM struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeLLM) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

type fakeStore struct {
	appended map[string][]models.ChatMessage
	err      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{appended: make(map[string][]models.ChatMessage)}
}

func (s *fakeStore) AppendChatMessage(userID string, msg models.ChatMessage) error {
	if s.err != nil {
		return s.err
	}
	s.appended[userID] = append(s.appended[userID], msg)
	return nil
}

func (s *fakeStore) ChatHistory(userID string, limit int) ([]models.ChatMessage, error) {
	msgs := s.appended[userID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestOrchestrator(client *fakeLLM, store Store) *Orchestrator {
	return NewOrchestrator(client, market.NewService(testLogger()), store, testLogger())
}

func TestChatReturnsResponseAndPersistsBothTurns(t *testing.T) {
	client := &fakeLLM{reply: "hello there"}
	store := newFakeStore()
	orch := newTestOrchestrator(client, store)

	response, err := orch.Chat(context.Background(), "u1", "hi", models.ChatContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response != "hello there" {
		t.Errorf("unexpected response: %q", response)
	}

	persisted := store.appended["u1"]
	if len(persisted) != 2 {
		t.Fatalf("expected 2 persisted turns, got %d", len(persisted))
	}
	if persisted[0].Role != models.RoleUser || persisted[0].Content != "hi" {
		t.Errorf("unexpected first turn: %+v", persisted[0])
	}
	if persisted[1].Role != models.RoleAssistant || persisted[1].Content != "hello there" {
		t.Errorf("unexpected second turn: %+v", persisted[1])
	}
}

func TestChatTranscriptsAreIsolatedPerUser(t *testing.T) {
	client := &fakeLLM{reply: "ok"}
	orch := newTestOrchestrator(client, newFakeStore())

	if _, err := orch.Chat(context.Background(), "alice", "my secret question", models.ChatContext{}); err != nil {
		t.Fatal(err)
	}
	if _, err := orch.Chat(context.Background(), "bob", "unrelated", models.ChatContext{}); err != nil {
		t.Fatal(err)
	}

	bobPrompt := client.prompts[len(client.prompts)-1]
	if strings.Contains(bobPrompt, "my secret question") {
		t.Error("one user's transcript leaked into another user's prompt")
	}
}

func TestChatIncludesPriorTurns(t *testing.T) {
	client := &fakeLLM{reply: "answer"}
	orch := newTestOrchestrator(client, newFakeStore())

	if _, err := orch.Chat(context.Background(), "u1", "first question", models.ChatContext{}); err != nil {
		t.Fatal(err)
	}
	if _, err := orch.Chat(context.Background(), "u1", "second question", models.ChatContext{}); err != nil {
		t.Fatal(err)
	}

	first := client.prompts[0]
	if strings.Contains(first, "CONVERSATION SO FAR") {
		t.Error("first turn should have no conversation section")
	}
	second := client.prompts[1]
	if !strings.Contains(second, "User: first question") {
		t.Error("second prompt should include the first user turn")
	}
	if !strings.Contains(second, "Assistant: answer") {
		t.Error("second prompt should include the first assistant turn")
	}
}

func TestClearHistoryResetsTranscriptOnly(t *testing.T) {
	client := &fakeLLM{reply: "ok"}
	store := newFakeStore()
	orch := newTestOrchestrator(client, store)

	if _, err := orch.Chat(context.Background(), "u1", "remember this", models.ChatContext{}); err != nil {
		t.Fatal(err)
	}
	orch.ClearHistory("u1")
	if _, err := orch.Chat(context.Background(), "u1", "fresh start", models.ChatContext{}); err != nil {
		t.Fatal(err)
	}

	last := client.prompts[len(client.prompts)-1]
	if strings.Contains(last, "remember this") {
		t.Error("cleared transcript still appears in the prompt")
	}
	if len(store.appended["u1"]) != 4 {
		t.Errorf("persisted history should survive a transcript clear, got %d turns", len(store.appended["u1"]))
	}
}

func TestChatSurvivesStoreFailure(t *testing.T) {
	client := &fakeLLM{reply: "ok"}
	store := newFakeStore()
	store.err = errors.New("db down")
	orch := newTestOrchestrator(client, store)

	response, err := orch.Chat(context.Background(), "u1", "hi", models.ChatContext{})
	if err != nil {
		t.Fatalf("persistence failure must not fail the chat: %v", err)
	}
	if response != "ok" {
		t.Errorf("unexpected response: %q", response)
	}
}

func TestOrchestratorWithoutStore(t *testing.T) {
	client := &fakeLLM{reply: "ok"}
	orch := newTestOrchestrator(client, nil)

	if _, err := orch.Chat(context.Background(), "u1", "hi", models.ChatContext{}); err != nil {
		t.Fatalf("chat should work without a store: %v", err)
	}
	messages, err := orch.History("u1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("expected no persisted history, got %+v", messages)
	}
}

func TestChatPropagatesGenerationError(t *testing.T) {
	client := &fakeLLM{err: errors.New("model down")}
	orch := newTestOrchestrator(client, newFakeStore())

	if _, err := orch.Chat(context.Background(), "u1", "hi", models.ChatContext{}); err == nil {
		t.Fatal("expected error when generation fails")
	}
}

func TestBuildContextSummaryEmpty(t *testing.T) {
	got := BuildContextSummary(models.ChatContext{})
	if got != "No financial context available." {
		t.Errorf("unexpected summary: %q", got)
	}
}

func TestBuildContextSummaryTopCategories(t *testing.T) {
	fctx := models.ChatContext{
		Income: 50000,
		Expenses: []models.Expense{
			{Category: "Food", Amount: 8000},
			{Category: "Rent", Amount: 15000},
			{Category: "Transport", Amount: 2000},
			{Category: "Shopping", Amount: 5000},
		},
	}

	got := BuildContextSummary(fctx)

	if !strings.Contains(got, "- Monthly Income: ₹50000") {
		t.Errorf("summary missing income: %q", got)
	}
	if !strings.Contains(got, "top categories: Rent, Food, Shopping") {
		t.Errorf("expected top three categories by amount, got %q", got)
	}
	if strings.Contains(got, "Transport") {
		t.Errorf("fourth category should be dropped: %q", got)
	}
	if !strings.Contains(got, "- Total Expenses: ₹30000") {
		t.Errorf("summary missing expense total: %q", got)
	}
}

func TestBuildContextSummaryGoalsAndAnalysis(t *testing.T) {
	fctx := models.ChatContext{
		Goals: []models.Goal{
			{Name: "Emergency Fund", Target: 100000},
		},
		LastAnalysis: []byte(`{"budget_plan":"x"}`),
	}

	got := BuildContextSummary(fctx)

	if !strings.Contains(got, "Emergency Fund (Target: ₹100000)") {
		t.Errorf("summary missing goal: %q", got)
	}
	if !strings.Contains(got, "A previous financial analysis is available.") {
		t.Errorf("summary missing analysis marker: %q", got)
	}
}
