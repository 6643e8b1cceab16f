// Package mailer delivers transactional mail over SMTP.
package mailer

import (
	"context"
	"fmt"

	"storefront-server/internal/interfaces"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var _ interfaces.Mailer = (*smtpMailer)(nil)

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewSMTPMailer creates a Mailer that sends through the given SMTP relay.
func NewSMTPMailer(host string, port int, username, password, from string, logger *zap.Logger) interfaces.Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: logger.Named("SMTPMailer"),
	}
}

// Send delivers a single HTML message. Delivery is synchronous: callers that
// must not proceed without the mail (account activation) rely on the error.
func (m *smtpMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	// gomail не принимает context, поэтому проверяем отмену вручную.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mail send aborted: %w", err)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send email", zap.Error(err), zap.String("to", to), zap.String("subject", subject))
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	m.logger.Info("Email sent successfully", zap.String("to", to), zap.String("subject", subject))
	return nil
}
