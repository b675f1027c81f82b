package auth

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/jrsteele09/go-legal-client/internal/errors"
	"github.com/jrsteele09/go-legal-client/token"
	"github.com/jrsteele09/go-legal-client/users"
)

// Credentials are the email/password pair entered on the sign-in screen.
// They are never persisted.
type Credentials struct {
	Email    string
	Password string
}

// String keeps passwords out of logs.
func (c Credentials) String() string {
	return fmt.Sprintf("{Email:%s Password:[redacted]}", c.Email)
}

// Normalized trims the email. The password is sent as typed.
func (c Credentials) Normalized() Credentials {
	return Credentials{Email: strings.TrimSpace(c.Email), Password: c.Password}
}

// Validate performs the caller-side checks the sign-in screen runs before
// calling SignIn. The service itself never validates.
func (c Credentials) Validate() error {
	var fieldErrors []FieldError

	email := strings.TrimSpace(c.Email)
	switch {
	case email == "":
		fieldErrors = append(fieldErrors, FieldError{Field: "email", Message: "Email is required"})
	default:
		addr, err := mail.ParseAddress(email)
		if err != nil || addr.Address != email {
			fieldErrors = append(fieldErrors, FieldError{Field: "email", Message: "Enter a valid email address"})
		}
	}

	if c.Password == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "password", Message: "Password is required"})
	}

	if len(fieldErrors) == 0 {
		return nil
	}
	return &AuthError{
		Message: "Please correct the highlighted fields",
		Errors:  fieldErrors,
		kind:    errors.ErrValidation,
	}
}

// SignInResult is what a successful credential exchange yields.
type SignInResult struct {
	Tokens token.TokenPair
	User   *users.User
}
