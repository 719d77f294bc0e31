// Package mailer delivers account notifications over SMTP.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/tenantscore/rental-admin/internal/api/metrics"
)

const accountCreatedSubject = "Your TenantScore account has been created"

// Config captures the SMTP settings for the outbound mail channel.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends account notifications through an SMTP relay. It implements
// ports.Notifier.
type Mailer struct {
	client *mail.Client
	from   string
}

func New(cfg Config) (*Mailer, error) {
	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mailer: create client: %w", err)
	}

	return &Mailer{client: client, from: cfg.From}, nil
}

// AccountCreated sends the fixed account-created template to the given
// address. The temporary password travels out of band; the mail only tells
// the holder to log in and set their own.
func (m *Mailer) AccountCreated(ctx context.Context, email string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("mailer: set from: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("mailer: set to: %w", err)
	}

	msg.Subject(accountCreatedSubject)
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Your account has been created.\nEmail: %s\nPlease log in and create your password.\n", email))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("mailer: send account-created mail: %w", err)
	}

	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	return nil
}
