// Package contact relays contact form submissions to the site owner's mailbox.
package contact

import (
	"context"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/devsynchub/contactmail/internal/email"
	"github.com/devsynchub/contactmail/internal/logger"
)

// Result messages returned to the caller
const (
	MessageSent   = "Email sent successfully!"
	MessageFailed = "Failed to send email."
)

// Submission is a contact form payload
type Submission struct {
	FullName string
	Email    string
	Message  string
}

// Complete reports whether all three fields are present
func (s Submission) Complete() bool {
	return s.FullName != "" && s.Email != "" && s.Message != ""
}

// Result is the outcome of one dispatch
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Options configures a Service
type Options struct {
	// Account is the service account address; every message is sent from and to it
	Account string
	// SendTimeout bounds a single send; zero means no deadline
	SendTimeout time.Duration
	// SanitizeHTML strips unsafe markup from submitted fields
	SanitizeHTML bool
}

// Service dispatches contact submissions as email
type Service struct {
	sender email.Sender
	opts   Options
	policy *bluemonday.Policy
	log    *logger.Logger
}

// NewService creates a new contact Service
func NewService(sender email.Sender, opts Options, log *logger.Logger) *Service {
	s := &Service{
		sender: sender,
		opts:   opts,
		log:    log.WithComponent("contact"),
	}
	if opts.SanitizeHTML {
		s.policy = bluemonday.UGCPolicy()
	}
	return s
}

// Compose builds the notification message for a submission
func (s *Service) Compose(sub Submission) email.Message {
	name, addr, body := sub.FullName, sub.Email, sub.Message
	if s.policy != nil {
		name = s.policy.Sanitize(name)
		addr = s.policy.Sanitize(addr)
		body = s.policy.Sanitize(body)
	}

	return email.Message{
		From:     s.opts.Account,
		To:       s.opts.Account,
		Subject:  email.ContactSubject(sub.FullName),
		HTMLBody: email.ContactHTML(name, addr, body),
	}
}

// Dispatch sends exactly one email for sub. Transport failures are logged and
// reported through the Result; Dispatch never returns an error.
func (s *Service) Dispatch(ctx context.Context, sub Submission) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("error sending email")
			res = Result{Success: false, Message: MessageFailed}
		}
	}()

	if s.opts.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.SendTimeout)
		defer cancel()
	}

	if err := s.sender.Send(ctx, s.Compose(sub)); err != nil {
		s.log.Error().Err(err).Msg("error sending email")
		return Result{Success: false, Message: MessageFailed}
	}

	return Result{Success: true, Message: MessageSent}
}
