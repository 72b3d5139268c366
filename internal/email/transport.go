package email

import (
	"fmt"

	"github.com/devsynchub/contactmail/internal/config"
)

// NewFromConfig returns the Sender selected by cfg.Transport
func NewFromConfig(cfg config.EmailConfig) (Sender, error) {
	switch cfg.Transport {
	case config.TransportSMTP:
		host, port := cfg.SMTPEndpoint()
		return NewSMTPSender(SMTPConfig{
			Host:     host,
			Port:     port,
			Username: cfg.Address,
			Password: cfg.Password,
			Timeout:  cfg.SMTP.Timeout,
		})
	case config.TransportGmailAPI:
		return NewGmailSender(GmailConfig{
			ClientID:     cfg.GmailAPI.ClientID,
			ClientSecret: cfg.GmailAPI.ClientSecret,
			RefreshToken: cfg.GmailAPI.RefreshToken,
		})
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownTransport, cfg.Transport)
	}
}
