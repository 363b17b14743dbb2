package errors

import (
	"errors"
	"fmt"
)

// Common error types for the school API client
var (
	// Authentication errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")

	// Token errors
	ErrNoAccessToken  = errors.New("no access token")
	ErrNoRefreshToken = errors.New("no refresh token")
	ErrRefreshFailed  = errors.New("token refresh failed")
	ErrInvalidToken   = errors.New("invalid token")

	// Transport errors
	ErrUpstream = errors.New("upstream error")
	ErrNetwork  = errors.New("network error")

	// Request errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrRequestReused  = errors.New("request already dispatched")

	// Session storage errors
	ErrSessionKeyRequired = errors.New("session file is sealed, passphrase required")
	ErrSessionCorrupt     = errors.New("session file corrupt")

	// Password reset errors
	ErrWizardStep   = errors.New("password reset step out of order")
	ErrWeakPassword = errors.New("password does not meet requirements")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
