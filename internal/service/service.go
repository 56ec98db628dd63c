// Package service handles business logic behind the HTTP handlers.
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/HitanshGithub/agentic-finance-ai/internal/config"
	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
	"github.com/HitanshGithub/agentic-finance-ai/internal/repository"
)

const (
	minPasswordLength = 6
	tokenLifetime     = 24 * time.Hour
	verifyTokenMaxAge = 24 * time.Hour
)

// Mailer sends account and goal emails. Sends are best-effort; the service
// logs failures and carries on.
type Mailer interface {
	SendVerification(to, name, link string) error
	SendGoalReminder(to, name string, goal models.Goal) error
}

// GoogleVerifier validates a Google ID token and returns the account info.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (GoogleUser, error)
}

// GoogleUser is the subset of the Google token payload the service needs.
type GoogleUser struct {
	GoogleID string
	Email    string
	Name     string
}

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
	mailer Mailer
	google GoogleVerifier
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, mailer Mailer, google GoogleVerifier) *Service {
	return &Service{repo: repo, log: log, config: cfg, mailer: mailer, google: google}
}

// Signup creates an unverified user and sends a verification email. A failed
// email send does not fail the signup; the link is logged instead.
func (s *Service) Signup(email, password, name string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	token := uuid.New().String()
	if err := s.repo.SetVerificationToken(user.ID, token, time.Now().Add(verifyTokenMaxAge)); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/verify/%s", s.config.FrontendURL, token)
	if err := s.mailer.SendVerification(user.Email, user.Name, link); err != nil {
		s.log.Errorf("Failed to send verification email to %s: %v (link: %s)", user.Email, err, link)
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Verify marks the account behind the token as verified.
func (s *Service) Verify(token string) error {
	if err := s.repo.VerifyByToken(token); err != nil {
		return fmt.Errorf("invalid or expired verification token")
	}
	return nil
}

// Login authenticates a verified user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}
	if !user.Verified {
		return "", fmt.Errorf("email not verified")
	}

	tokenString, err := s.issueToken(user)
	if err != nil {
		return "", err
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// GoogleLogin signs a user in with a Google ID token, creating a verified
// account on first sight.
func (s *Service) GoogleLogin(ctx context.Context, idToken string) (string, *models.User, error) {
	info, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return "", nil, fmt.Errorf("invalid google token")
	}

	user, err := s.repo.FindUserByEmail(info.Email)
	if err == repository.ErrNotFound {
		user = &models.User{
			Email:    info.Email,
			Name:     info.Name,
			GoogleID: info.GoogleID,
			Verified: true,
		}
		if err := s.repo.CreateUser(user); err != nil {
			return "", nil, err
		}
		s.log.Infof("User registered via Google: %s", user.Email)
	} else if err != nil {
		return "", nil, err
	}

	tokenString, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return tokenString, user, nil
}

// Me returns the authenticated user's profile.
func (s *Service) Me(userID string) (*models.User, error) {
	return s.repo.FindUserByID(userID)
}

func (s *Service) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// SaveAnalysis persists a pipeline run for the user.
func (s *Service) SaveAnalysis(userID string, req models.AnalysisRequest, result models.Report) (string, error) {
	analysis := &models.Analysis{
		UserID:   userID,
		Income:   req.Income,
		Profile:  req.Profile,
		Expenses: req.Expenses,
		Result:   result,
	}
	if err := s.repo.SaveAnalysis(analysis); err != nil {
		return "", err
	}
	return analysis.ID, nil
}

// History returns the user's recent analyses, newest first.
func (s *Service) History(userID string, limit int) ([]models.Analysis, error) {
	return s.repo.ListAnalyses(userID, limit)
}

// HistoryByID returns a single analysis.
func (s *Service) HistoryByID(userID, id string) (*models.Analysis, error) {
	return s.repo.GetAnalysis(userID, id)
}

// CreateGoal validates and persists a new savings goal.
func (s *Service) CreateGoal(userID string, goal models.Goal) (*models.Goal, error) {
	goal.UserID = userID
	if err := goal.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateGoal(&goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListGoals returns the user's goals.
func (s *Service) ListGoals(userID string) ([]models.Goal, error) {
	return s.repo.ListGoals(userID)
}

// GetGoal returns one goal.
func (s *Service) GetGoal(userID, id string) (*models.Goal, error) {
	return s.repo.GetGoal(userID, id)
}

// UpdateGoal applies a partial update.
func (s *Service) UpdateGoal(userID, id string, update models.GoalUpdate) (*models.Goal, error) {
	if update.Target != nil && *update.Target <= 0 {
		return nil, fmt.Errorf("target must be greater than zero")
	}
	if update.Current != nil && *update.Current < 0 {
		return nil, fmt.Errorf("current must not be negative")
	}
	if update.Deadline != nil {
		if err := models.ValidateDeadline(*update.Deadline); err != nil {
			return nil, err
		}
	}
	return s.repo.UpdateGoal(userID, id, update)
}

// DeleteGoal removes a goal.
func (s *Service) DeleteGoal(userID, id string) error {
	return s.repo.DeleteGoal(userID, id)
}

// MonthlyTrends aggregates total spend per month over the user's analyses in
// the window, newest month first.
func (s *Service) MonthlyTrends(userID string, months int) ([]models.MonthlyTrend, error) {
	analyses, err := s.analysesInWindow(userID, months)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	for _, a := range analyses {
		month := a.CreatedAt.Format("2006-01")
		for _, exp := range a.Expenses {
			totals[month] += exp.Amount
		}
	}

	trends := make([]models.MonthlyTrend, 0, len(totals))
	for month, total := range totals {
		trends = append(trends, models.MonthlyTrend{Month: month, Total: total})
	}
	sort.Slice(trends, func(i, j int) bool {
		return trends[i].Month > trends[j].Month
	})
	return trends, nil
}

// CategoryTrends aggregates total spend per category over the window, largest
// first.
func (s *Service) CategoryTrends(userID string, months int) ([]models.CategoryTrend, error) {
	analyses, err := s.analysesInWindow(userID, months)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	var order []string
	for _, a := range analyses {
		for _, exp := range a.Expenses {
			if _, seen := totals[exp.Category]; !seen {
				order = append(order, exp.Category)
			}
			totals[exp.Category] += exp.Amount
		}
	}

	trends := make([]models.CategoryTrend, 0, len(order))
	for _, category := range order {
		trends = append(trends, models.CategoryTrend{Category: category, Total: totals[category]})
	}
	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].Total > trends[j].Total
	})
	return trends, nil
}

func (s *Service) analysesInWindow(userID string, months int) ([]models.Analysis, error) {
	if months <= 0 {
		months = 6
	}
	since := time.Now().AddDate(0, -months, 0)
	return s.repo.ListAnalysesSince(userID, since)
}

// DeleteChatHistory removes the user's persisted chat history.
func (s *Service) DeleteChatHistory(userID string) error {
	return s.repo.DeleteChatHistory(userID)
}

// SendGoalReminders emails users whose unfinished goals are due within a
// week. Intended to run from the daily cron job; failures are logged and the
// sweep continues.
func (s *Service) SendGoalReminders() {
	reminders, err := s.repo.GoalsDueWithin(7)
	if err != nil {
		s.log.Errorf("goal reminder sweep failed: %v", err)
		return
	}

	for _, rem := range reminders {
		if err := s.mailer.SendGoalReminder(rem.Email, rem.Name, rem.Goal); err != nil {
			s.log.Errorf("Failed to send goal reminder to %s: %v", rem.Email, err)
			continue
		}
		s.log.Infof("Goal reminder sent to %s for goal %q", rem.Email, rem.Goal.Name)
	}
}
