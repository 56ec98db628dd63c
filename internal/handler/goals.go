package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/HitanshGithub/agentic-finance-ai/internal/agents"
	"github.com/HitanshGithub/agentic-finance-ai/internal/middleware"
	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
	"github.com/HitanshGithub/agentic-finance-ai/internal/repository"
)

// CreateGoal persists a new savings goal
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var goal models.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateGoal(middleware.UserID(r.Context()), goal)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListGoals returns the user's goals
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.ListGoals(middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"goals": goals})
}

// GetGoal returns one goal
func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.svc.GetGoal(middleware.UserID(r.Context()), mux.Vars(r)["id"])
	if err == repository.ErrNotFound {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

// UpdateGoal applies a partial update to a goal
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var update models.GoalUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.svc.UpdateGoal(middleware.UserID(r.Context()), mux.Vars(r)["id"], update)
	if err == repository.ErrNotFound {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

// DeleteGoal removes a goal
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteGoal(middleware.UserID(r.Context()), mux.Vars(r)["id"])
	if err == repository.ErrNotFound {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted"})
}

// GoalSuggestions asks the savings agent for advice on reaching the goal
// faster. Expenses come from the user's latest analysis when one exists; an
// optional monthly_savings parameter adds a feasibility check.
func (h *Handler) GoalSuggestions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	goal, err := h.svc.GetGoal(userID, mux.Vars(r)["id"])
	if err == repository.ErrNotFound {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	income, _ := strconv.ParseFloat(r.URL.Query().Get("income"), 64)

	var expenses []models.Expense
	if recent, err := h.svc.History(userID, 1); err == nil && len(recent) > 0 {
		expenses = recent[0].Expenses
	}

	suggestions, err := h.savings.Suggestions(r.Context(), *goal, income, expenses)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	resp := map[string]interface{}{"suggestions": suggestions}
	if raw := r.URL.Query().Get("monthly_savings"); raw != "" {
		monthly, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid monthly_savings")
			return
		}
		resp["feasibility"] = agents.Feasibility(*goal, monthly)
	}
	writeJSON(w, http.StatusOK, resp)
}
