package error

import "errors"

// Notification e-mail errors.
var (
	ErrEmailQueueFailed      = errors.New("failed to queue email")
	ErrEmailJobNotFound      = errors.New("email job not found")
	ErrInvalidTemplate       = errors.New("invalid email template")
	ErrPermanentEmailFailure = errors.New("permanent email failure")
	ErrTemporaryEmailFailure = errors.New("temporary email failure")
)

// EmailErrorCode defines error codes for notification errors.
// Format: EML-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	ErrCodeEmailQueueFailed EmailErrorCode = "EML-010001"

	ErrCodePermanentEmailFailure EmailErrorCode = "EML-020001"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EML-020002"

	ErrCodeInvalidTemplate EmailErrorCode = "EML-030001"
)

// EmailError represents a notification error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Code: code, Message: message, Err: err}
}
