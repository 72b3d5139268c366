package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/devsynchub/contactmail/internal/config"
	"github.com/devsynchub/contactmail/internal/contact"
	"github.com/devsynchub/contactmail/internal/email"
	"github.com/devsynchub/contactmail/internal/logger"
	contactmail "github.com/devsynchub/contactmail/sdk/go"
)

var rootCmd = &cobra.Command{
	Use:          "mailcheck",
	Short:        "Operator tool for the contactmail service",
	SilenceUsage: true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration with secrets redacted",
	RunE:  runConfig,
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one contact email through the configured transport",
	RunE:  runSend,
}

var submitCmd = &cobra.Command{
	Use:   "submit <base-url>",
	Short: "Submit the contact form of a running server",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubmit,
}

var healthCmd = &cobra.Command{
	Use:   "health <base-url>",
	Short: "Query the health endpoint of a running server",
	Args:  cobra.ExactArgs(1),
	RunE:  runHealth,
}

var (
	remoteOrigin string

	sendName    string
	sendEmail   string
	sendMessage string
	sendTimeout time.Duration
)

func init() {
	sendCmd.Flags().StringVar(&sendName, "name", "mailcheck", "submitter full name")
	sendCmd.Flags().StringVar(&sendEmail, "email", "mailcheck@localhost", "submitter email address")
	sendCmd.Flags().StringVar(&sendMessage, "message", "Test message from mailcheck.", "message body")
	sendCmd.Flags().DurationVar(&sendTimeout, "timeout", 30*time.Second, "send deadline")

	submitCmd.Flags().StringVar(&sendName, "name", "mailcheck", "submitter full name")
	submitCmd.Flags().StringVar(&sendEmail, "email", "mailcheck@localhost", "submitter email address")
	submitCmd.Flags().StringVar(&sendMessage, "message", "Test message from mailcheck.", "message body")
	rootCmd.PersistentFlags().StringVar(&remoteOrigin, "origin", "", "Origin header for remote calls")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfig(cmd.OutOrStdout(), cfg)

	if err := cfg.Email.Validate(); err != nil {
		return fmt.Errorf("email configuration: %w", err)
	}
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	host, port := cfg.Email.SMTPEndpoint()
	fmt.Fprintf(w, "server.addr:           %s\n", cfg.Server.Addr())
	fmt.Fprintf(w, "server.health_enabled: %v\n", cfg.Server.HealthEnabled)
	fmt.Fprintf(w, "cors.allowed_origins:  %v\n", cfg.CORS.AllowedOrigins)
	fmt.Fprintf(w, "email.transport:       %s\n", cfg.Email.Transport)
	fmt.Fprintf(w, "email.service:         %s\n", cfg.Email.Service)
	fmt.Fprintf(w, "email.smtp:            %s:%d\n", host, port)
	fmt.Fprintf(w, "email.address:         %s\n", cfg.Email.Address)
	fmt.Fprintf(w, "email.password:        %s\n", redact(cfg.Email.Password))
	fmt.Fprintf(w, "email.send_timeout:    %s\n", cfg.Email.SendTimeout)
	fmt.Fprintf(w, "email.smtp.timeout:    %s\n", cfg.Email.SMTP.Timeout)
	fmt.Fprintf(w, "contact.sanitize_html: %v\n", cfg.Contact.SanitizeHTML)
}

func redact(secret string) string {
	if secret == "" {
		return "(unset)"
	}
	return "********"
}

func runSend(cmd *cobra.Command, args []string) error {
	log := logger.New("info", "text")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	sender, err := email.NewFromConfig(cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize mail transport: %w", err)
	}

	svc := contact.NewService(sender, contact.Options{
		Account:      cfg.Email.Address,
		SendTimeout:  sendTimeout,
		SanitizeHTML: cfg.Contact.SanitizeHTML,
	}, log)

	sub := contact.Submission{FullName: sendName, Email: sendEmail, Message: sendMessage}
	if !sub.Complete() {
		return fmt.Errorf("name, email and message must not be empty")
	}

	log.Info().Str("transport", cfg.Email.Transport).Str("to", cfg.Email.Address).Msg("sending test email...")

	res := svc.Dispatch(context.Background(), sub)
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	if !res.Success {
		return fmt.Errorf("send failed")
	}
	return nil
}

func newClient(baseURL string) *contactmail.Client {
	return contactmail.NewClient(contactmail.Config{BaseURL: baseURL, Origin: remoteOrigin})
}

func runSubmit(cmd *cobra.Command, args []string) error {
	res, err := newClient(args[0]).SendEmail(cmd.Context(), contactmail.SendEmailRequest{
		FullName: sendName,
		Email:    sendEmail,
		Message:  sendMessage,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}

func runHealth(cmd *cobra.Command, args []string) error {
	h, err := newClient(args[0]).Health(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (uptime %.0fs, at %s)\n", h.Message, h.Uptime, h.Timestamp.Format(time.RFC3339))
	return nil
}
