package handler

import (
	"encoding/json"
	"net/http"

	"github.com/HitanshGithub/agentic-finance-ai/internal/middleware"
	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

// Chat answers a user message with optional financial context
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string             `json:"message"`
		Context models.ChatContext `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	response, err := h.chat.Chat(r.Context(), middleware.UserID(r.Context()), req.Message, req.Context)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}

// ClearChat resets the in-memory transcript. Persisted history is untouched;
// DeleteChatHistory handles that.
func (h *Handler) ClearChat(w http.ResponseWriter, r *http.Request) {
	h.chat.ClearHistory(middleware.UserID(r.Context()))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Conversation cleared"})
}

// ChatHistory returns persisted chat turns in chronological order
func (h *Handler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	messages, err := h.chat.History(middleware.UserID(r.Context()), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": messages})
}

// DeleteChatHistory removes the user's persisted chat history
func (h *Handler) DeleteChatHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if err := h.svc.DeleteChatHistory(userID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.chat.ClearHistory(userID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chat history deleted"})
}
