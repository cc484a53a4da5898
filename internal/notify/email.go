// Package notify delivers account and alert emails over SMTP.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/arjunmehra/folio/internal/common"
	"github.com/arjunmehra/folio/internal/interfaces"
)

// EmailNotifier sends mail through a plain SMTP relay. With no host
// configured it runs in mock mode: deliveries are logged at info level and
// reported as successful, so alert evaluation works out of the box.
type EmailNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *common.Logger

	// send is swapped in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailNotifier creates a notifier from SMTP configuration.
func NewEmailNotifier(cfg common.EmailConfig, logger *common.Logger) *EmailNotifier {
	return &EmailNotifier{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		logger:   logger,
		send:     smtp.SendMail,
	}
}

// Configured reports whether a real SMTP relay is set up.
func (n *EmailNotifier) Configured() bool {
	return n.host != ""
}

// Send delivers one message. In mock mode the message is logged instead.
func (n *EmailNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("email recipient is required")
	}

	if !n.Configured() {
		n.logger.Info().
			Str("recipient", recipient).
			Str("subject", subject).
			Msg("Email delivery skipped, SMTP not configured")
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(n.from, recipient, subject, body)
	addr := fmt.Sprintf("%s:%d", n.host, n.port)

	var auth smtp.Auth
	if n.username != "" {
		auth = smtp.PlainAuth("", n.username, n.password, n.host)
	}

	if err := n.send(addr, auth, n.from, []string{recipient}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", recipient, err)
	}

	n.logger.Debug().Str("recipient", recipient).Str("subject", subject).Msg("Email sent")
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// Compile-time check
var _ interfaces.Notifier = (*EmailNotifier)(nil)
