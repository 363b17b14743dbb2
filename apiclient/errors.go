package apiclient

import (
	"fmt"
	"net/http"

	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/oauthmodel"
)

// GenericMessage is shown when the server gave no usable error text.
const GenericMessage = "Something went wrong. Please try again."

// UpstreamError is any non-2xx response that the client did not recover from.
type UpstreamError struct {
	Method  string
	Path    string
	Status  int
	Payload oauthmodel.ErrorResponse
	Body    []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.detail())
}

func (e *UpstreamError) Unwrap() error {
	return apperrors.ErrUpstream
}

// Message returns the server-provided error text, or a generic fallback.
func (e *UpstreamError) Message() string {
	if e.Payload.Error != "" {
		return e.Payload.Error
	}
	if e.Payload.Detail != "" {
		return e.Payload.Detail
	}
	return GenericMessage
}

func (e *UpstreamError) detail() string {
	if e.Payload.Error != "" {
		return e.Payload.Error
	}
	if e.Payload.Detail != "" {
		return e.Payload.Detail
	}
	return http.StatusText(e.Status)
}

// UnauthorizedError is a terminal 401: the refresh failed, or the replayed
// request was rejected again. The caller should treat the user as logged out.
type UnauthorizedError struct {
	Method string
	Path   string
	Cause  error
}

func (e *UnauthorizedError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s %s: unauthorized", e.Method, e.Path)
	}
	return fmt.Sprintf("%s %s: unauthorized: %v", e.Method, e.Path, e.Cause)
}

func (e *UnauthorizedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{apperrors.ErrUnauthorized}
	}
	return []error{apperrors.ErrUnauthorized, e.Cause}
}

// NetworkError means the request never got a response: timeout, DNS failure,
// connection reset, or cancellation.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() []error {
	return []error{apperrors.ErrNetwork, e.Err}
}

// UserMessage maps any client error to text fit for an end user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var upstream *UpstreamError
	switch {
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return "Your session has expired. Please log in again."
	case apperrors.As(err, &upstream):
		return upstream.Message()
	case apperrors.Is(err, apperrors.ErrInvalidRequest):
		return err.Error()
	default:
		return GenericMessage
	}
}
