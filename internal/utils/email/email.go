package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/HitanshGithub/agentic-finance-ai/internal/config"
	"github.com/HitanshGithub/agentic-finance-ai/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendVerification sends the account verification email. Without SMTP
// credentials the link is only logged, which keeps local signups working.
func (s *Sender) SendVerification(to, name, link string) error {
	if s.cfg.SMTPUsername == "" || s.cfg.SMTPPassword == "" {
		s.logger.Warnf("SMTP not configured; verification link for %s: %s", to, link)
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Verify your Agentic Finance AI account"

	greeting := "there"
	if name != "" {
		greeting = name
	}
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thanks for signing up! Please verify your email address by clicking the link below:\n\n"+
			"%s\n\n"+
			"This link will expire in 24 hours.\n"+
			"If you didn't create an account, please ignore this email.\n",
		greeting, link,
	)
	body += "\nBest regards,\nAgentic Finance AI"
	e.Text = []byte(body)

	if err := s.send(e); err != nil {
		return err
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// SendGoalReminder sends a deadline reminder for an unfinished savings goal.
func (s *Sender) SendGoalReminder(to, name string, goal models.Goal) error {
	if s.cfg.SMTPUsername == "" || s.cfg.SMTPPassword == "" {
		s.logger.Warnf("SMTP not configured; goal reminder for %s skipped", to)
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Your savings goal %q is due soon", goal.Name)

	remaining := goal.Target - goal.Current
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your savings goal %q is due on %s.\n"+
			"You have saved ₹%.2f of the ₹%.2f target; ₹%.2f remains.\n"+
			"A small extra contribution now can keep you on track.\n",
		name, goal.Name, goal.Deadline, goal.Current, goal.Target, remaining,
	)
	body += "\nBest regards,\nAgentic Finance AI"
	e.Text = []byte(body)

	if err := s.send(e); err != nil {
		return err
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %v: %v", e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
