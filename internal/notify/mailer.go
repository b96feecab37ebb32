// Package notify sends outbound email via SMTP. Sending is best-effort:
// callers treat failures as warnings, never as operation failures.
package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/nvoss/linkstash/internal/config"
)

// InvitationEmail is the payload for an invitation notification
type InvitationEmail struct {
	To               string
	OrganizationName string
	WorkspaceName    string
	Role             string
	AcceptURL        string
}

// Mailer sends email over SMTP
type Mailer struct {
	cfg    config.SMTPConfig
	server string
	auth   smtp.Auth
}

// NewMailer creates a new mailer
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		cfg:    cfg,
		server: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth:   smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
	}
}

// IsConfigured returns true if SMTP is configured
func (m *Mailer) IsConfigured() bool {
	return m.cfg.Host != "" && m.cfg.From != ""
}

// SendInvitation sends an invitation email
func (m *Mailer) SendInvitation(email InvitationEmail) error {
	if !m.IsConfigured() {
		return fmt.Errorf("smtp not configured")
	}

	subject := fmt.Sprintf("You've been invited to %s", email.OrganizationName)
	body := fmt.Sprintf(
		"You have been invited to join the workspace %q in %s as %s.\r\n\r\n"+
			"Accept the invitation here: %s\r\n\r\n"+
			"The invitation expires; accept it soon.\r\n",
		email.WorkspaceName, email.OrganizationName, email.Role, email.AcceptURL,
	)

	return m.send([]string{email.To}, subject, body)
}

func (m *Mailer) send(to []string, subject, body string) error {
	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)
	}

	msg := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: %s\r\n"+
			"Subject: %s\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		strings.Join(to, ", "),
		from,
		subject,
		body,
	))

	return smtp.SendMail(m.server, m.auth, m.cfg.From, to, msg)
}
