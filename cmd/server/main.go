package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devsynchub/contactmail/internal/config"
	"github.com/devsynchub/contactmail/internal/contact"
	"github.com/devsynchub/contactmail/internal/email"
	"github.com/devsynchub/contactmail/internal/handler"
	"github.com/devsynchub/contactmail/internal/logger"
	"github.com/devsynchub/contactmail/internal/middleware"
	"github.com/devsynchub/contactmail/internal/router"
)

func main() {
	startedAt := time.Now()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", "0.1.0").Msg("starting contactmail server")

	// Initialize mail transport
	if err := cfg.Email.Validate(); err != nil {
		if errors.Is(err, config.ErrUnknownTransport) {
			log.Fatal().Err(err).Msg("invalid email configuration")
		}
		log.Warn().Err(err).Msg("email is not fully configured; sends will fail")
	}
	sender, err := email.NewFromConfig(cfg.Email)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize mail transport")
	}
	log.Info().Str("transport", cfg.Email.Transport).Str("service", cfg.Email.Service).Msg("mail transport initialized")

	// Initialize services
	contactSvc := contact.NewService(sender, contact.Options{
		Account:      cfg.Email.Address,
		SendTimeout:  cfg.Email.SendTimeout,
		SanitizeHTML: cfg.Contact.SanitizeHTML,
	}, log)

	// Initialize handlers
	h := handler.New(log, cfg, contactSvc, startedAt)

	// Initialize middleware
	mw := middleware.New(log, cfg)

	// Set up router
	r := router.New(h, mw, cfg)

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", addr).
			Strs("allowed_origins", cfg.CORS.AllowedOrigins).
			Bool("health", cfg.Server.HealthEnabled).
			Msgf("server is running on http://localhost:%d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
