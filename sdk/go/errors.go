package contactmail

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors returned by the SDK.
var (
	// ErrFieldsRequired is returned when the server rejects a submission with a missing field.
	ErrFieldsRequired = errors.New("contactmail: all fields are required")

	// ErrInvalidBody is returned when the server cannot parse the request body.
	ErrInvalidBody = errors.New("contactmail: invalid JSON body")

	// ErrBodyTooLarge is returned when the request body exceeds the server's limit.
	ErrBodyTooLarge = errors.New("contactmail: request body too large")

	// ErrSendFailed is returned when the server could not relay the email.
	ErrSendFailed = errors.New("contactmail: failed to send email")

	// ErrOriginRejected is returned when the configured Origin is not on the server's allow-list.
	ErrOriginRejected = errors.New("contactmail: origin not allowed")

	// ErrHealthUnavailable is returned by Health when the deployment has no health route.
	ErrHealthUnavailable = errors.New("contactmail: health endpoint not available")
)

// APIError represents a non-2xx response from the contactmail API.
type APIError struct {
	StatusCode int
	Message    string
	err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("contactmail: API error %d: %s", e.StatusCode, e.Message)
}

// Unwrap returns the matching sentinel error, if any.
func (e *APIError) Unwrap() error {
	return e.err
}

// healthError matches the health endpoint's failure body.
type healthError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func parseAPIError(statusCode int, body []byte) error {
	var he healthError
	if err := json.Unmarshal(body, &he); err == nil && he.Message != "" {
		msg := he.Message
		if he.Error != "" {
			msg += ": " + he.Error
		}
		return &APIError{StatusCode: statusCode, Message: msg}
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    string(body),
	}
}

// IsAPIError checks whether err is an APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
