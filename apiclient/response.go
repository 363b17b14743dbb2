package apiclient

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
)

// Response is a successful (2xx) API response with its body fully read.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Envelope is the {"data", "message", "error"} wrapper used by some endpoints.
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Decode unmarshals the raw body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return apperrors.Wrapf(apperrors.ErrInternal, "decoding response body: %v", err)
	}
	return nil
}

// DecodeData unwraps the "data" member of an envelope response.
func DecodeData[T any](resp *Response) (T, error) {
	return DecodeField[T](resp, "data")
}

// DecodeField unwraps a single top-level member of a JSON object response.
// Most endpoints name the member after the resource ("schools", "class").
// A missing member is reported as ErrNotFound.
func DecodeField[T any](resp *Response, key string) (T, error) {
	var zero T
	var members map[string]json.RawMessage
	if err := resp.Decode(&members); err != nil {
		return zero, err
	}
	raw, ok := members[key]
	if !ok || string(raw) == "null" {
		return zero, apperrors.Wrapf(apperrors.ErrNotFound, "response has no %q member", key)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, apperrors.Wrapf(apperrors.ErrInternal, "decoding %q: %v", key, err)
	}
	return v, nil
}

// DecodeMessage returns the "message" member of an envelope response.
func DecodeMessage(resp *Response) (string, error) {
	var env Envelope[json.RawMessage]
	if err := resp.Decode(&env); err != nil {
		return "", err
	}
	return env.Message, nil
}
