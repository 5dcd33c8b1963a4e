// Package notify sends the recruiter a heads-up email for each new
// candidature. Delivery is best effort: a failure is logged and never fails
// the submission.
package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"recruitment-backend/internal/shared/telemetry"
)

// Notifier announces a new candidature.
type Notifier interface {
	NewCandidature(name, email, phone, role, fileRef string)
}

// SMTP sends the notification over plain SMTP.
type SMTP struct {
	Addr     string // host:port
	From     string
	To       string
	Username string
	Password string

	// send is swappable for tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTP builds an SMTP notifier.
func NewSMTP(addr, from, to, username, password string) *SMTP {
	return &SMTP{
		Addr:     addr,
		From:     from,
		To:       to,
		Username: username,
		Password: password,
		send:     smtp.SendMail,
	}
}

// NewCandidature emails the recruiter; errors are logged and swallowed.
func (s *SMTP) NewCandidature(name, email, phone, role, fileRef string) {
	subject := "Nova Candidatura - " + role
	if role == "" {
		subject = "Nova Candidatura"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.From)
	fmt.Fprintf(&b, "To: %s\r\n", s.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString("Nova candidatura recebida para o processo seletivo:\r\n\r\n")
	fmt.Fprintf(&b, "Nome: %s\r\nEmail: %s\r\nTelefone: %s\r\n\r\n", name, email, phone)
	fmt.Fprintf(&b, "Curriculo: %s\r\n", fileRef)

	var auth smtp.Auth
	if s.Username != "" {
		host := s.Addr
		if idx := strings.Index(host, ":"); idx >= 0 {
			host = host[:idx]
		}
		auth = smtp.PlainAuth("", s.Username, s.Password, host)
	}

	if err := s.send(s.Addr, auth, s.From, []string{s.To}, []byte(b.String())); err != nil {
		telemetry.Warn("notify.email_failed", map[string]any{
			"error": err.Error(),
		})
		return
	}
	telemetry.Info("notify.email_sent", map[string]any{"to": s.To})
}

// Noop discards notifications; used when no recipient is configured.
type Noop struct{}

// NewCandidature does nothing.
func (Noop) NewCandidature(name, email, phone, role, fileRef string) {}

var (
	_ Notifier = (*SMTP)(nil)
	_ Notifier = Noop{}
)
