package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Transports supported by the mail dispatcher
const (
	TransportSMTP     = "smtp"
	TransportGmailAPI = "gmail_api"
)

var (
	// ErrUnknownTransport is returned when email.transport names no supported transport
	ErrUnknownTransport = errors.New("unknown email transport")
	// ErrMissingCredentials is returned by Validate when the mail account is not configured
	ErrMissingCredentials = errors.New("mail account credentials are not configured")
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Log     LogConfig     `mapstructure:"log"`
	Email   EmailConfig   `mapstructure:"email"`
	Contact ContactConfig `mapstructure:"contact"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// HealthEnabled registers GET /api/health
	HealthEnabled bool `mapstructure:"health_enabled"`
	// MaxBodyBytes caps JSON request bodies
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CORSConfig holds the cross-origin policy
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EmailConfig holds mail account and transport configuration
type EmailConfig struct {
	// Transport is "smtp" or "gmail_api"
	Transport string `mapstructure:"transport"`
	// Service names a well-known provider; it fills SMTP host and port when they are empty
	Service string `mapstructure:"service"`
	// Address is the service account: sender and recipient of every contact email
	Address string `mapstructure:"address"`
	// Password is the account password or app password
	Password string `mapstructure:"password"`
	// SendTimeout bounds a single send; zero means no deadline
	SendTimeout time.Duration  `mapstructure:"send_timeout"`
	SMTP        SMTPConfig     `mapstructure:"smtp"`
	GmailAPI    GmailAPIConfig `mapstructure:"gmail_api"`
}

// SMTPConfig overrides the provider's submission endpoint
type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// Timeout bounds dialing and each SMTP command; zero keeps the client default
	Timeout time.Duration `mapstructure:"timeout"`
}

// GmailAPIConfig holds OAuth2 token-based credentials for the Gmail API transport
type GmailAPIConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RefreshToken string `mapstructure:"refresh_token"`
}

// ContactConfig holds contact form behaviour
type ContactConfig struct {
	// SanitizeHTML strips unsafe markup from submitted fields before they reach the email body.
	// Off by default: submitted fields are interpolated verbatim.
	SanitizeHTML bool `mapstructure:"sanitize_html"`
}

// providers maps Service names to their submission endpoints
var providers = map[string]SMTPConfig{
	"gmail":   {Host: "smtp.gmail.com", Port: 587},
	"outlook": {Host: "smtp-mail.outlook.com", Port: 587},
	"yahoo":   {Host: "smtp.mail.yahoo.com", Port: 587},
}

// SMTPEndpoint resolves the SMTP host and port, falling back to the named service
func (c EmailConfig) SMTPEndpoint() (string, int) {
	host, port := c.SMTP.Host, c.SMTP.Port
	if p, ok := providers[strings.ToLower(c.Service)]; ok {
		if host == "" {
			host = p.Host
		}
		if port == 0 {
			port = p.Port
		}
	}
	if port == 0 {
		port = 587
	}
	return host, port
}

// Validate reports whether the mail account is usable. The server still starts
// when it fails; every dispatch will then resolve to a failure.
func (c EmailConfig) Validate() error {
	switch c.Transport {
	case TransportSMTP:
		if c.Address == "" || c.Password == "" {
			return ErrMissingCredentials
		}
		if host, _ := c.SMTPEndpoint(); host == "" {
			return fmt.Errorf("smtp host is not set and service %q is unknown", c.Service)
		}
	case TransportGmailAPI:
		if c.Address == "" || c.GmailAPI.RefreshToken == "" {
			return ErrMissingCredentials
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTransport, c.Transport)
	}
	return nil
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	// Seed the environment from a local .env file; real variables win
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/contactmail")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("CONTACTMAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Deployment variables keep their conventional names
	bindings := map[string]string{
		"server.port":    "PORT",
		"email.address":  "GMAIL_EMAIL",
		"email.password": "GMAIL_PASSWORD",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "CONTACTMAIL_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Email.Transport = strings.ToLower(cfg.Email.Transport)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.health_enabled", true)
	v.SetDefault("server.max_body_bytes", 100<<10)
	v.SetDefault("server.shutdown_timeout", "30s")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "https://www.devsynchub.com"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "Authorization"})

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Email defaults
	v.SetDefault("email.transport", TransportSMTP)
	v.SetDefault("email.service", "gmail")
	v.SetDefault("email.address", "")
	v.SetDefault("email.password", "")
	v.SetDefault("email.send_timeout", "0s")
	v.SetDefault("email.smtp.host", "")
	v.SetDefault("email.smtp.port", 0)
	v.SetDefault("email.smtp.timeout", "0s")
	v.SetDefault("email.gmail_api.client_id", "")
	v.SetDefault("email.gmail_api.client_secret", "")
	v.SetDefault("email.gmail_api.refresh_token", "")

	// Contact form defaults
	v.SetDefault("contact.sanitize_html", false)
}
