package email

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the configuration for the SMTP sender.
type SMTPConfig struct {
	// Host and Port address the provider's submission endpoint.
	Host string
	Port int
	// Username and Password authenticate the service account.
	Username string
	Password string
	// Timeout bounds dialing and each SMTP command; zero keeps the go-mail default.
	Timeout time.Duration

	// plaintext skips STARTTLS; only set for loopback test servers
	plaintext bool
}

// SMTPSender implements Sender over authenticated SMTP.
// A fresh client session is dialed for every Send.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates a new SMTPSender.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp: host is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPSender{cfg: cfg}, nil
}

func (s *SMTPSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
	}
	switch {
	case s.cfg.plaintext:
		opts = append(opts, mail.WithTLSPortPolicy(mail.NoTLS))
	case s.cfg.Port == 465:
		// Implicit TLS
		opts = append(opts, mail.WithSSLPort(false))
	default:
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}
	opts = append(opts, mail.WithPort(s.cfg.Port))
	if s.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(s.cfg.Timeout))
	}
	return opts
}

// Send dials the provider, authenticates and sends msg.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := newMsg(msg)
	if err != nil {
		return fmt.Errorf("smtp: %w", err)
	}

	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("smtp: failed to create client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp: failed to send email: %w", err)
	}

	return nil
}
