package auth

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-legal-client/api"
	"github.com/jrsteele09/go-legal-client/internal/errors"
)

// Fixed messages for failures that carry no server message.
const (
	MessageNetworkError = "Network error. Please check your connection and try again."
	MessageUnexpected   = "An unexpected error occurred. Please try again."
)

// FieldError is a field-level failure reported by the backend.
type FieldError = api.FieldError

// AuthError is the only error the Auth Service returns. StatusCode is zero
// when no response was received.
type AuthError struct {
	Message    string
	StatusCode int
	Errors     []FieldError

	kind error
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// Unwrap exposes the error class, one of the internal/errors sentinels, so
// callers can use errors.Is(err, errors.ErrNetwork) and friends.
func (e *AuthError) Unwrap() error {
	return e.kind
}

// FieldMessage returns the first message reported for field.
func (e *AuthError) FieldMessage(field string) (string, bool) {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return fe.Message, true
		}
	}
	return "", false
}

// AsAuthError extracts an *AuthError from err's chain.
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func networkError(cause error) *AuthError {
	return &AuthError{Message: MessageNetworkError, kind: fmt.Errorf("%w: %w", errors.ErrNetwork, cause)}
}

func unexpectedError(statusCode int) *AuthError {
	return &AuthError{Message: MessageUnexpected, StatusCode: statusCode, kind: errors.ErrUnexpected}
}

// responseError builds an AuthError from a received response. message falls
// back to the HTTP status text.
func responseError(statusCode int, message string, fieldErrors []FieldError) *AuthError {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	if message == "" {
		message = MessageUnexpected
	}
	return &AuthError{
		Message:    message,
		StatusCode: statusCode,
		Errors:     fieldErrors,
		kind:       classify(statusCode, fieldErrors),
	}
}

func classify(statusCode int, fieldErrors []FieldError) error {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return errors.ErrRateLimited
	case len(fieldErrors) > 0 || statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		return errors.ErrValidation
	case statusCode < http.StatusBadRequest || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return errors.ErrInvalidCredentials
	default:
		return errors.ErrUnexpectedStatus
	}
}
