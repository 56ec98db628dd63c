// Package repository provides Postgres persistence for users, analyses,
// goals and chat history.
package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InitSchema creates the tables if they do not exist.
func (r *Repository) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		google_id TEXT NOT NULL DEFAULT '',
		verified BOOLEAN NOT NULL DEFAULT FALSE,
		verify_token TEXT NOT NULL DEFAULT '',
		verify_expires TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		income DOUBLE PRECISION NOT NULL,
		profile TEXT NOT NULL,
		expenses JSONB NOT NULL,
		result JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS goals (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		target DOUBLE PRECISION NOT NULL,
		current DOUBLE PRECISION NOT NULL DEFAULT 0,
		deadline TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS chat_messages (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_user_created ON analyses(user_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id);
	CREATE INDEX IF NOT EXISTS idx_chat_user_created ON chat_messages(user_id, created_at);
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	user.ID = uuid.New().String()
	query := `
		INSERT INTO users (id, email, name, password_hash, google_id, verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	err := r.db.QueryRow(query, user.ID, user.Email, user.Name, user.PasswordHash, user.GoogleID, user.Verified).
		Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, name, password_hash, google_id, verified, created_at
		FROM users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.GoogleID, &user.Verified, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by ID
func (r *Repository) FindUserByID(id string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, name, password_hash, google_id, verified, created_at
		FROM users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.GoogleID, &user.Verified, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// SetVerificationToken stores the email verification token for a user.
func (r *Repository) SetVerificationToken(userID, token string, expires time.Time) error {
	_, err := r.db.Exec(`UPDATE users SET verify_token = $1, verify_expires = $2 WHERE id = $3`,
		token, expires, userID)
	if err != nil {
		return fmt.Errorf("failed to set verification token: %w", err)
	}
	return nil
}

// VerifyByToken marks the matching user as verified if the token has not
// expired. Returns ErrNotFound for unknown or expired tokens.
func (r *Repository) VerifyByToken(token string) error {
	res, err := r.db.Exec(`
		UPDATE users SET verified = TRUE, verify_token = ''
		WHERE verify_token = $1 AND verify_expires > CURRENT_TIMESTAMP`, token)
	if err != nil {
		return fmt.Errorf("failed to verify token: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to verify token: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveAnalysis persists a pipeline run.
func (r *Repository) SaveAnalysis(a *models.Analysis) error {
	a.ID = uuid.New().String()

	expenses, err := json.Marshal(a.Expenses)
	if err != nil {
		return fmt.Errorf("failed to encode expenses: %w", err)
	}
	result, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	query := `
		INSERT INTO analyses (id, user_id, income, profile, expenses, result)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	err = r.db.QueryRow(query, a.ID, a.UserID, a.Income, a.Profile, expenses, result).
		Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// ListAnalyses returns the user's analyses, newest first.
func (r *Repository) ListAnalyses(userID string, limit int) ([]models.Analysis, error) {
	query := `
		SELECT id, user_id, income, profile, expenses, result, created_at
		FROM analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()
	return scanAnalyses(rows)
}

// ListAnalysesSince returns the user's analyses created after the cutoff,
// newest first.
func (r *Repository) ListAnalysesSince(userID string, since time.Time) ([]models.Analysis, error) {
	query := `
		SELECT id, user_id, income, profile, expenses, result, created_at
		FROM analyses
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()
	return scanAnalyses(rows)
}

func scanAnalyses(rows *sql.Rows) ([]models.Analysis, error) {
	var analyses []models.Analysis
	for rows.Next() {
		var a models.Analysis
		var expenses, result []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.Income, &a.Profile, &expenses, &result, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		if err := json.Unmarshal(expenses, &a.Expenses); err != nil {
			return nil, fmt.Errorf("failed to decode expenses: %w", err)
		}
		if err := json.Unmarshal(result, &a.Result); err != nil {
			return nil, fmt.Errorf("failed to decode result: %w", err)
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read analyses: %w", err)
	}
	return analyses, nil
}

// GetAnalysis returns one of the user's analyses by ID.
func (r *Repository) GetAnalysis(userID, id string) (*models.Analysis, error) {
	a := &models.Analysis{}
	var expenses, result []byte
	query := `
		SELECT id, user_id, income, profile, expenses, result, created_at
		FROM analyses
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, id, userID).
		Scan(&a.ID, &a.UserID, &a.Income, &a.Profile, &expenses, &result, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	if err := json.Unmarshal(expenses, &a.Expenses); err != nil {
		return nil, fmt.Errorf("failed to decode expenses: %w", err)
	}
	if err := json.Unmarshal(result, &a.Result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return a, nil
}

// CreateGoal persists a new savings goal.
func (r *Repository) CreateGoal(goal *models.Goal) error {
	goal.ID = uuid.New().String()
	query := `
		INSERT INTO goals (id, user_id, name, target, current, deadline)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(query, goal.ID, goal.UserID, goal.Name, goal.Target, goal.Current, goal.Deadline).
		Scan(&goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// ListGoals returns the user's goals, oldest first.
func (r *Repository) ListGoals(userID string) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, name, target, current, deadline, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Target, &g.Current, &g.Deadline, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read goals: %w", err)
	}
	return goals, nil
}

// GetGoal returns one of the user's goals by ID.
func (r *Repository) GetGoal(userID, id string) (*models.Goal, error) {
	g := &models.Goal{}
	query := `
		SELECT id, user_id, name, target, current, deadline, created_at, updated_at
		FROM goals
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, id, userID).
		Scan(&g.ID, &g.UserID, &g.Name, &g.Target, &g.Current, &g.Deadline, &g.CreatedAt, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return g, nil
}

// UpdateGoal applies a partial update to a goal. Current is stored as sent;
// it may exceed the target.
func (r *Repository) UpdateGoal(userID, id string, update models.GoalUpdate) (*models.Goal, error) {
	goal, err := r.GetGoal(userID, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		goal.Name = *update.Name
	}
	if update.Target != nil {
		goal.Target = *update.Target
	}
	if update.Current != nil {
		goal.Current = *update.Current
	}
	if update.Deadline != nil {
		goal.Deadline = *update.Deadline
	}

	query := `
		UPDATE goals SET name = $1, target = $2, current = $3, deadline = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5 AND user_id = $6
		RETURNING updated_at`
	err = r.db.QueryRow(query, goal.Name, goal.Target, goal.Current, goal.Deadline, id, userID).
		Scan(&goal.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

// DeleteGoal removes one of the user's goals.
func (r *Repository) DeleteGoal(userID, id string) error {
	res, err := r.db.Exec(`DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GoalReminder pairs a goal nearing its deadline with the owner's contact.
type GoalReminder struct {
	Goal  models.Goal
	Email string
	Name  string
}

// GoalsDueWithin returns unfinished goals whose deadline falls within the
// given number of days, joined with the owning user.
func (r *Repository) GoalsDueWithin(days int) ([]GoalReminder, error) {
	cutoff := time.Now().AddDate(0, 0, days).Format("2006-01-02")
	today := time.Now().Format("2006-01-02")
	query := `
		SELECT g.id, g.user_id, g.name, g.target, g.current, g.deadline, g.created_at, g.updated_at,
		       u.email, u.name
		FROM goals g
		JOIN users u ON u.id = g.user_id
		WHERE g.deadline <> '' AND g.deadline >= $1 AND g.deadline <= $2 AND g.current < g.target`
	rows, err := r.db.Query(query, today, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list due goals: %w", err)
	}
	defer rows.Close()

	var reminders []GoalReminder
	for rows.Next() {
		var rem GoalReminder
		g := &rem.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Target, &g.Current, &g.Deadline,
			&g.CreatedAt, &g.UpdatedAt, &rem.Email, &rem.Name); err != nil {
			return nil, fmt.Errorf("failed to scan due goal: %w", err)
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read due goals: %w", err)
	}
	return reminders, nil
}

// AppendChatMessage persists a chat turn for the user.
func (r *Repository) AppendChatMessage(userID string, msg models.ChatMessage) error {
	_, err := r.db.Exec(`
		INSERT INTO chat_messages (id, user_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), userID, msg.Role, msg.Content, msg.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// ChatHistory returns the user's most recent chat turns in chronological
// order.
func (r *Repository) ChatHistory(userID string, limit int) ([]models.ChatMessage, error) {
	query := `
		SELECT role, content, created_at FROM (
			SELECT role, content, created_at
			FROM chat_messages
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(&msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chat history: %w", err)
	}
	return messages, nil
}

// DeleteChatHistory removes the user's persisted chat history.
func (r *Repository) DeleteChatHistory(userID string) error {
	if _, err := r.db.Exec(`DELETE FROM chat_messages WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete chat history: %w", err)
	}
	return nil
}
