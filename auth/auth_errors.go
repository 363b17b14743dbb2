package auth

import (
	"errors"

	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
)

var (
	// LoginRejectedErr wraps the backend's message for a failed login.
	LoginRejectedErr = apperrors.ErrInvalidCredentials
	// NoTokensErr means the login response carried no token pair.
	NoTokensErr = errors.New("login response has no tokens")
)
