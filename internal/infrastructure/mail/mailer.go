// Package mail delivers transactional email over SMTP.
package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"
)

// Config captures the SMTP settings. An empty Host means mail is not
// configured and no Mailer should be constructed.
type Config struct {
	Host     string
	Port     int
	TLS      bool
	Username string
	Password string
	From     string
}

// Mailer implements ports.Notifier on top of go-mail.
type Mailer struct {
	client *gomail.Client
	from   string
	log    zerolog.Logger
}

func NewMailer(cfg Config, log zerolog.Logger) (*Mailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
	}
	if cfg.Username != "" && cfg.Password != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthLogin),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	if cfg.TLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail client: %w", err)
	}

	return &Mailer{client: client, from: cfg.From, log: log}, nil
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	m.log.Debug().Str("to", to).Str("subject", subject).Msg("mail sent")
	return nil
}
