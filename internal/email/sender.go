package email

import "context"

// Sender is the interface that all mail transports must implement.
// Implementations open their own transport session per Send; nothing is pooled.
type Sender interface {
	// Send delivers one message.
	Send(ctx context.Context, msg Message) error
}

// Message represents an email message to be sent.
type Message struct {
	From     string // sender address, optionally "Name <addr>"
	To       string // recipient email address
	Subject  string // email subject
	HTMLBody string // HTML email body
	TextBody string // plain-text fallback body
}
