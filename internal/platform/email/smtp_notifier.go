package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/quillbooks/invoicing_backend/internal/platform/config"
)

// SMTPNotifier delivers notices over plain SMTP with optional AUTH.
type SMTPNotifier struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPNotifier creates a notifier from the application SMTP settings.
func NewSMTPNotifier(cfg *config.Config) *SMTPNotifier {
	return &SMTPNotifier{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

// Send delivers a single message. One attempt, no retry.
func (n *SMTPNotifier) Send(ctx context.Context, to string, subject string, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", n.from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := n.host + ":" + n.port
	var auth smtp.Auth
	if n.username != "" {
		auth = smtp.PlainAuth("", n.username, n.password, n.host)
	}

	if err := smtp.SendMail(addr, auth, n.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
