// Package mailer sends transactional mail over SMTP.
package mailer

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"

	cfg "github.com/relokit/vault/config"
	"github.com/relokit/vault/pkg/logger"
)

// Mailer is the outbound mail contract.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMTPMailer struct {
	client *mail.Client
	from   string
	logger logger.Logger
}

func NewSMTPMailer(log logger.Logger) (*SMTPMailer, error) {
	smtpConfig := cfg.GetSMTPConfig()
	client, err := mail.NewClient(smtpConfig.Host,
		mail.WithPort(smtpConfig.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(smtpConfig.Username),
		mail.WithPassword(smtpConfig.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return &SMTPMailer{
		client: client,
		from:   smtpConfig.From,
		logger: log,
	}, nil
}

// Send delivers one plain-text message.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.Error("Failed to send mail",
			logger.String("to", to),
			logger.String("subject", subject),
			logger.Error(err),
		)
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
