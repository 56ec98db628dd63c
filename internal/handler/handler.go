// Package handler exposes the HTTP API.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/HitanshGithub/agentic-finance-ai/internal/agents"
	"github.com/HitanshGithub/agentic-finance-ai/internal/chat"
	"github.com/HitanshGithub/agentic-finance-ai/internal/service"
	"github.com/HitanshGithub/agentic-finance-ai/internal/statement"
)

type Handler struct {
	svc       *service.Service
	pipeline  *agents.Pipeline
	savings   *agents.SavingsAgent
	chat      *chat.Orchestrator
	extractor statement.TextExtractor
	log       *logrus.Logger
}

func NewHandler(svc *service.Service, pipeline *agents.Pipeline, savings *agents.SavingsAgent, chatOrch *chat.Orchestrator, extractor statement.TextExtractor, log *logrus.Logger) *Handler {
	return &Handler{
		svc:       svc,
		pipeline:  pipeline,
		savings:   savings,
		chat:      chatOrch,
		extractor: extractor,
		log:       log,
	}
}

// Root reports service status
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "Agentic Finance AI Backend Running"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// queryInt reads an integer query parameter, falling back to a default.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
