package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/HitanshGithub/agentic-finance-ai/internal/agents"
	"github.com/HitanshGithub/agentic-finance-ai/internal/chat"
	"github.com/HitanshGithub/agentic-finance-ai/internal/config"
	"github.com/HitanshGithub/agentic-finance-ai/internal/handler"
	"github.com/HitanshGithub/agentic-finance-ai/internal/llm"
	"github.com/HitanshGithub/agentic-finance-ai/internal/market"
	"github.com/HitanshGithub/agentic-finance-ai/internal/middleware"
	"github.com/HitanshGithub/agentic-finance-ai/internal/repository"
	"github.com/HitanshGithub/agentic-finance-ai/internal/service"
	"github.com/HitanshGithub/agentic-finance-ai/internal/statement"
	"github.com/HitanshGithub/agentic-finance-ai/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	if err := repo.InitSchema(); err != nil {
		logger.Fatalf("Failed to initialize schema: %v", err)
	}

	mailer := email.NewSender(cfg, logger)
	google := service.NewTokeninfoVerifier(cfg.GoogleClient)
	svc := service.NewService(repo, logger, cfg, mailer, google)

	// Market data sources (best-effort; any of them may be down)
	forex := market.NewForexSource(cfg.ForexURL, logger)
	quotes := market.NewService(logger,
		market.NewGoldSource(forex, logger),
		market.NewStockIndexSource(),
		market.NewCryptoSource(),
		forex,
	)

	llmClient := llm.NewAnthropicClient(cfg.LLMModel, cfg.LLMMaxTokens, logger)
	pipeline := agents.NewPipeline(llmClient, quotes, logger)
	savings := agents.NewSavingsAgent(llmClient)
	chatOrch := chat.NewOrchestrator(llmClient, quotes, repo, logger)

	h := handler.NewHandler(svc, pipeline, savings, chatOrch, statement.PlainTextExtractor{}, logger)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/", h.Root).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")
	r.HandleFunc("/auth/signup", h.Signup).Methods("POST")
	r.HandleFunc("/auth/verify/{token}", h.VerifyEmail).Methods("GET")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/auth/google", h.GoogleLogin).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/auth/me", h.Me).Methods("GET")
	authRouter.HandleFunc("/analyze", h.Analyze).Methods("POST")
	authRouter.HandleFunc("/history", h.History).Methods("GET")
	authRouter.HandleFunc("/history/{id}", h.HistoryByID).Methods("GET")
	authRouter.HandleFunc("/upload-pdf", h.UploadPDF).Methods("POST")
	authRouter.HandleFunc("/goals", h.CreateGoal).Methods("POST")
	authRouter.HandleFunc("/goals", h.ListGoals).Methods("GET")
	authRouter.HandleFunc("/goals/{id}", h.GetGoal).Methods("GET")
	authRouter.HandleFunc("/goals/{id}", h.UpdateGoal).Methods("PUT")
	authRouter.HandleFunc("/goals/{id}", h.DeleteGoal).Methods("DELETE")
	authRouter.HandleFunc("/goals/{id}/suggestions", h.GoalSuggestions).Methods("GET")
	authRouter.HandleFunc("/chat", h.Chat).Methods("POST")
	authRouter.HandleFunc("/chat/clear", h.ClearChat).Methods("POST")
	authRouter.HandleFunc("/chat/history", h.ChatHistory).Methods("GET")
	authRouter.HandleFunc("/chat/history", h.DeleteChatHistory).Methods("DELETE")
	authRouter.HandleFunc("/detect-recurring", h.DetectRecurring).Methods("POST")
	authRouter.HandleFunc("/trends/monthly", h.MonthlyTrends).Methods("GET")
	authRouter.HandleFunc("/trends/categories", h.CategoryTrends).Methods("GET")

	// Daily goal-deadline reminder sweep
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 9 * * *", svc.SendGoalReminders); err != nil {
		logger.Fatalf("Failed to schedule reminder job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server. The write timeout covers the slowest pipeline run, which
	// blocks on several sequential model calls.
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
