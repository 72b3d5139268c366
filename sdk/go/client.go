package contactmail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const messageInvalidBody = "Invalid JSON body."

// Config holds the configuration for the contactmail client.
type Config struct {
	// BaseURL is the root URL of the contactmail server, e.g. "https://contact.example.com".
	BaseURL string

	// Origin is sent as the Origin header, as a browser on the frontend would.
	// Leave empty to call the API as a non-browser client.
	Origin string

	// HTTPClient is an optional custom HTTP client.
	// If nil, a default client with 30s timeout is used.
	HTTPClient *http.Client
}

func (c *Config) defaults() {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
}

// Client calls the contactmail HTTP API.
type Client struct {
	cfg Config
}

// NewClient creates a new client with the given configuration.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{cfg: cfg}
}

// SendEmail submits a contact form. It returns the server's Result on 200 and
// an error wrapping one of the package's sentinel errors otherwise.
func (c *Client) SendEmail(ctx context.Context, req SendEmailRequest) (*Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("contactmail: failed to encode request: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, "/api/send-email", payload)
	if err != nil {
		return nil, err
	}

	if status == http.StatusForbidden {
		return nil, ErrOriginRejected
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, parseAPIError(status, body)
	}

	if status == http.StatusOK {
		return &result, nil
	}
	return nil, &APIError{StatusCode: status, Message: result.Message, err: sendEmailError(status, result.Message)}
}

// sendEmailError picks the sentinel matching a failed send-email response.
func sendEmailError(status int, message string) error {
	switch status {
	case http.StatusBadRequest:
		if message == messageInvalidBody {
			return ErrInvalidBody
		}
		return ErrFieldsRequired
	case http.StatusRequestEntityTooLarge:
		return ErrBodyTooLarge
	case http.StatusInternalServerError:
		return ErrSendFailed
	default:
		return nil
	}
}

// Health calls the health endpoint of deployments that expose it.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound {
		return nil, ErrHealthUnavailable
	}
	if status != http.StatusOK {
		return nil, parseAPIError(status, body)
	}

	var health Health
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, fmt.Errorf("contactmail: failed to parse health: %w", err)
	}
	return &health, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("contactmail: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Origin != "" {
		req.Header.Set("Origin", c.cfg.Origin)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("contactmail: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("contactmail: failed to read response: %w", err)
	}

	return resp.StatusCode, body, nil
}
