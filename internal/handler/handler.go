package handler

import (
	"context"
	"time"

	"github.com/devsynchub/contactmail/internal/config"
	"github.com/devsynchub/contactmail/internal/contact"
	"github.com/devsynchub/contactmail/internal/logger"
)

// Dispatcher sends one contact submission
type Dispatcher interface {
	Dispatch(ctx context.Context, sub contact.Submission) contact.Result
}

// Handler holds all HTTP handlers
type Handler struct {
	log        *logger.Logger
	cfg        *config.Config
	contactSvc Dispatcher
	startedAt  time.Time
	now        func() time.Time
}

// New creates a new Handler instance. startedAt is the process start time
// reported by the health endpoint.
func New(log *logger.Logger, cfg *config.Config, contactSvc Dispatcher, startedAt time.Time) *Handler {
	return &Handler{
		log:        log,
		cfg:        cfg,
		contactSvc: contactSvc,
		startedAt:  startedAt,
		now:        time.Now,
	}
}
