package email

import (
	"context"
	"fmt"
	"net/smtp"

	"middlebro/internal/adapters/observability"
)

// Sender delivers confirmation mail over SMTP. With an empty user it runs
// unauthenticated, which is what local relays and Mailpit expect.
type Sender struct {
	addr string
	from string
	auth smtp.Auth
}

func New(host string, port int, user, pass, from string) *Sender {
	s := &Sender{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
	}
	if user != "" {
		s.auth = smtp.PlainAuth("", user, pass, host)
	}
	return s
}

func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	// net/smtp has no context support; the ctx parameter keeps the port
	// signature uniform and lets callers bail out before dialing.
	if err := ctx.Err(); err != nil {
		return err
	}
	err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, buildMessage(s.from, to, subject, body))
	observability.ObserveNotification("email", err)
	if err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// buildMessage assembles a minimal RFC 5322 message, enough for common
// relays.
func buildMessage(from, to, subject, body string) []byte {
	return []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from, to, subject, body,
	))
}
