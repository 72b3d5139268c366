package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailConfig holds the configuration for the Gmail API sender.
type GmailConfig struct {
	// ClientID, ClientSecret and RefreshToken are the OAuth2 credentials of the sender mailbox.
	ClientID     string
	ClientSecret string
	RefreshToken string
	// Endpoint overrides the API base URL. It must end with a slash.
	Endpoint string
	// HTTPClient replaces the OAuth2 client when set.
	HTTPClient *http.Client
}

// GmailSender implements Sender using the Gmail API.
type GmailSender struct {
	cfg GmailConfig
}

// NewGmailSender creates a GmailSender using OAuth2 client credentials + refresh token.
// This is useful for personal Gmail accounts without domain-wide delegation.
func NewGmailSender(cfg GmailConfig) (*GmailSender, error) {
	if cfg.HTTPClient == nil && cfg.RefreshToken == "" {
		return nil, fmt.Errorf("gmail: refresh token is required")
	}
	return &GmailSender{cfg: cfg}, nil
}

// service builds a new API session
func (g *GmailSender) service(ctx context.Context) (*gmail.Service, error) {
	client := g.cfg.HTTPClient
	if client == nil {
		oauthCfg := &oauth2.Config{
			ClientID:     g.cfg.ClientID,
			ClientSecret: g.cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gmail.GmailSendScope},
		}
		client = oauthCfg.Client(ctx, &oauth2.Token{RefreshToken: g.cfg.RefreshToken})
	}

	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if g.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.cfg.Endpoint))
	}

	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to create service: %w", err)
	}
	return svc, nil
}

// Send sends an email via the Gmail API.
func (g *GmailSender) Send(ctx context.Context, msg Message) error {
	raw, err := BuildMIME(msg)
	if err != nil {
		return fmt.Errorf("gmail: %w", err)
	}

	svc, err := g.service(ctx)
	if err != nil {
		return err
	}

	gmailMsg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}

	if _, err := svc.Users.Messages.Send("me", gmailMsg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gmail: failed to send email: %w", err)
	}

	return nil
}
