package cli

import (
	"github.com/jrsteele09/go-school-client/apiclient"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/internal/validate"
)

const (
	SessionExpiredMessage = "session expired, run schoolctl login"
	NotLoggedInMessage    = "not logged in, run schoolctl login"
)

// Describe turns a command error into the one line printed before exiting.
func Describe(err error) string {
	var fields validate.FieldErrors
	switch {
	case err == nil:
		return ""
	case apperrors.Is(err, apperrors.ErrNotAuthenticated), apperrors.Is(err, apperrors.ErrNoRefreshToken):
		return NotLoggedInMessage
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return SessionExpiredMessage
	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		return err.Error()
	case apperrors.As(err, &fields):
		return fields.Error()
	case apperrors.Is(err, apperrors.ErrSessionKeyRequired):
		return "the session file is sealed, set SCHOOL_SESSION_KEY"
	case apperrors.Is(err, apperrors.ErrSessionCorrupt):
		return "the stored session is unreadable, run schoolctl logout"
	case apperrors.Is(err, apperrors.ErrWizardStep), apperrors.Is(err, apperrors.ErrWeakPassword):
		return err.Error()
	case apperrors.Is(err, apperrors.ErrInvalidRequest):
		return err.Error()
	default:
		return apiclient.UserMessage(err)
	}
}
