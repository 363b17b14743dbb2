package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync"

	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
)

const contentTypeJSON = "application/json"

// Request describes one outbound call. The body is buffered so the request
// can be replayed once after a token refresh. A Request may be passed to
// Client.Do only once.
type Request struct {
	Method string
	Path   string // relative to the client's base URL
	Query  url.Values
	Header http.Header
	Body   []byte

	mu       sync.Mutex
	retried  bool
	state    State
	attempts int
	buildErr error
}

type RequestOption func(*Request)

// NewRequest builds a request with a JSON content type by default.
func NewRequest(method, path string, options ...RequestOption) *Request {
	r := &Request{
		Method: method,
		Path:   path,
		Query:  url.Values{},
		Header: http.Header{},
		state:  StatePending,
	}
	r.Header.Set("Content-Type", contentTypeJSON)
	r.Header.Set("Accept", contentTypeJSON)
	for _, opt := range options {
		opt(r)
	}
	return r
}

func WithQuery(query url.Values) RequestOption {
	return func(r *Request) {
		for k, vs := range query {
			for _, v := range vs {
				r.Query.Add(k, v)
			}
		}
	}
}

func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		r.Header.Set(key, value)
	}
}

// WithJSON encodes v as the request body.
func WithJSON(v any) RequestOption {
	return func(r *Request) {
		body, err := json.Marshal(v)
		if err != nil {
			r.buildErr = apperrors.Wrapf(apperrors.ErrInvalidRequest, "encoding body: %v", err)
			return
		}
		r.Body = body
		r.Header.Set("Content-Type", contentTypeJSON)
	}
}

// WithBody sets a raw body and its content type.
func WithBody(contentType string, body []byte) RequestOption {
	return func(r *Request) {
		r.Body = body
		r.Header.Set("Content-Type", contentType)
	}
}

// File is one file part of a multipart request.
type File struct {
	Field    string
	Name     string
	Contents io.Reader
}

// WithMultipart encodes fields and files as multipart/form-data. The whole
// form is read into memory so the request stays replayable.
func WithMultipart(fields map[string]string, files ...File) RequestOption {
	return func(r *Request) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for k, v := range fields {
			if err := w.WriteField(k, v); err != nil {
				r.buildErr = apperrors.Wrapf(apperrors.ErrInvalidRequest, "multipart field %s: %v", k, err)
				return
			}
		}
		for _, f := range files {
			part, err := w.CreateFormFile(f.Field, f.Name)
			if err != nil {
				r.buildErr = apperrors.Wrapf(apperrors.ErrInvalidRequest, "multipart file %s: %v", f.Name, err)
				return
			}
			if _, err := io.Copy(part, f.Contents); err != nil {
				r.buildErr = apperrors.Wrapf(apperrors.ErrInvalidRequest, "reading %s: %v", f.Name, err)
				return
			}
		}
		if err := w.Close(); err != nil {
			r.buildErr = apperrors.Wrapf(apperrors.ErrInvalidRequest, "closing multipart body: %v", err)
			return
		}
		r.Body = buf.Bytes()
		r.Header.Set("Content-Type", w.FormDataContentType())
	}
}

// Retried reports whether the request has already been replayed after a
// token refresh. Once set it stays set.
func (r *Request) Retried() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retried
}

// State returns the request's current lifecycle state.
func (r *Request) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Attempts returns how many times the request was sent to the target.
func (r *Request) Attempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts
}

func (r *Request) markRetried() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retried = true
}

func (r *Request) countAttempt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts++
}

func (r *Request) setBearer(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Header.Set("Authorization", "Bearer "+token)
}

// transition moves the request to next, failing if the lifecycle forbids it.
func (r *Request) transition(next State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.state.canMoveTo(next) {
		return fmt.Errorf("request %s %s: %s -> %s: %w", r.Method, r.Path, r.state, next, apperrors.ErrRequestReused)
	}
	r.state = next
	return nil
}

func (r *Request) mustTransition(next State) {
	if err := r.transition(next); err != nil {
		panic(err)
	}
}

// snapshot copies what is needed to build one HTTP attempt.
func (r *Request) snapshot() (http.Header, []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Header.Clone(), r.Body
}
