package contactmail

import "time"

// SendEmailRequest is the contact form payload.
type SendEmailRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

// Result is the body of every send-email response.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Health is the body of a successful health check.
type Health struct {
	Uptime    float64   `json:"uptime"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
