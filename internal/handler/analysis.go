package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/HitanshGithub/agentic-finance-ai/internal/middleware"
	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
	"github.com/HitanshGithub/agentic-finance-ai/internal/recurring"
	"github.com/HitanshGithub/agentic-finance-ai/internal/repository"
	"github.com/HitanshGithub/agentic-finance-ai/internal/statement"
)

type analyzeResponse struct {
	models.Report
	ID      string `json:"id,omitempty"`
	DBError string `json:"db_error,omitempty"`
}

// Analyze runs the agent pipeline and persists the result. A persistence
// failure is reported alongside the otherwise-successful report rather than
// failing the request.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := middleware.UserID(r.Context())
	report := h.pipeline.Run(r.Context(), req)

	resp := analyzeResponse{Report: report}
	if !report.Failed() {
		id, err := h.svc.SaveAnalysis(userID, req, report)
		if err != nil {
			h.log.Errorf("failed to persist analysis for user %s: %v", userID, err)
			resp.DBError = err.Error()
		} else {
			resp.ID = id
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// History lists recent analyses, newest first
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)
	analyses, err := h.svc.History(middleware.UserID(r.Context()), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if analyses == nil {
		analyses = []models.Analysis{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": analyses})
}

// HistoryByID returns a single analysis
func (h *Handler) HistoryByID(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.svc.HistoryByID(middleware.UserID(r.Context()), mux.Vars(r)["id"])
	if err == repository.ErrNotFound {
		writeError(w, http.StatusNotFound, "analysis not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// UploadPDF extracts expense records from an uploaded bank statement
func (h *Handler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	text, err := h.extractor.Extract(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not extract text from document")
		return
	}

	expenses := statement.ParseExpenses(text)
	if expenses == nil {
		expenses = []models.Expense{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"expenses": expenses})
}

// DetectRecurring runs the recurring-expense detector over the posted list
func (h *Handler) DetectRecurring(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Expenses []models.Expense `json:"expenses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, recurring.Detect(req.Expenses))
}

// MonthlyTrends returns total spend per month
func (h *Handler) MonthlyTrends(w http.ResponseWriter, r *http.Request) {
	months := queryInt(r, "months", 6)
	trends, err := h.svc.MonthlyTrends(middleware.UserID(r.Context()), months)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if trends == nil {
		trends = []models.MonthlyTrend{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"months": trends})
}

// CategoryTrends returns total spend per category
func (h *Handler) CategoryTrends(w http.ResponseWriter, r *http.Request) {
	months := queryInt(r, "months", 6)
	trends, err := h.svc.CategoryTrends(middleware.UserID(r.Context()), months)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if trends == nil {
		trends = []models.CategoryTrend{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": trends})
}
