package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/sessions"
	"github.com/jrsteele09/go-school-client/token/refresh"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLoginPath is where the user is sent when the session cannot be recovered.
const DefaultLoginPath = "/login"

// Refresher mints a new access token from the stored refresh token and
// persists it. refresh.Manager is the production implementation.
type Refresher interface {
	Refresh(ctx context.Context) (string, error)
}

// Client issues requests against the backend API. It attaches the stored
// access token to every request and, when a request fails with 401, refreshes
// the token once and replays the request before reporting failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *sessions.Manager
	refresher  Refresher
	navigator  Navigator
	loginPath  string
	logger     zerolog.Logger
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient sets the transport used for API calls (default: 30s timeout).
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRefresher replaces the default refresh.Manager.
func WithRefresher(refresher Refresher) ClientOption {
	return func(c *Client) {
		c.refresher = refresher
	}
}

// WithNavigator sets where forced logouts are sent.
func WithNavigator(navigator Navigator) ClientOption {
	return func(c *Client) {
		c.navigator = navigator
	}
}

func WithLoginPath(path string) ClientOption {
	return func(c *Client) {
		c.loginPath = path
	}
}

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, sessionManager *sessions.Manager, options ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[apiclient New] base URL is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errors.Wrap(err, "[apiclient New] invalid base URL")
	}
	if sessionManager == nil {
		return nil, errors.New("[apiclient New] session manager is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		sessions:   sessionManager,
		loginPath:  DefaultLoginPath,
		logger:     log.Logger,
	}
	for _, opt := range options {
		opt(c)
	}

	if c.navigator == nil {
		c.navigator = NewLocation("/")
	}
	if c.refresher == nil {
		// The refresh call must bypass this client, so it gets its own
		// plain http.Client sharing only the timeout.
		c.refresher = refresh.NewManager(c.baseURL, sessionManager,
			refresh.WithHTTPClient(&http.Client{Timeout: c.httpClient.Timeout}),
			refresh.WithLogger(c.logger),
		)
	}
	return c, nil
}

// Sessions returns the session manager backing this client.
func (c *Client) Sessions() *sessions.Manager {
	return c.sessions
}

// BaseURL returns the API root every request path is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient returns the underlying transport.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Navigator returns the navigator used for forced logouts.
func (c *Client) Navigator() Navigator {
	return c.navigator
}

// LoginPath returns the path treated as the login page.
func (c *Client) LoginPath() string {
	return c.loginPath
}

// Do sends req and returns the 2xx response. On a 401 it refreshes the access
// token and replays req exactly once, unless req was already replayed or the
// user is on the login page.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.buildErr != nil {
		return nil, req.buildErr
	}
	if err := req.transition(StateSent); err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, req)
	if err == nil {
		req.mustTransition(StateSucceeded)
		return resp, nil
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.Status != http.StatusUnauthorized || req.Retried() || c.onLoginPage() {
		req.mustTransition(StateFailed)
		return nil, err
	}

	req.mustTransition(StateExpired)
	return c.recoverUnauthorized(ctx, req)
}

func (c *Client) recoverUnauthorized(ctx context.Context, req *Request) (*Response, error) {
	req.markRetried()
	req.mustTransition(StateRefreshingToken)

	c.logger.Debug().Str("method", req.Method).Str("path", req.Path).Msg("access token rejected, refreshing")

	accessToken, err := c.refresher.Refresh(ctx)
	if err != nil && ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		// The caller stopped waiting; the shared refresh still completes and
		// stores its tokens, so the session stays.
		c.logger.Debug().Err(err).Str("method", req.Method).Str("path", req.Path).Msg("gave up waiting for token refresh")
		req.mustTransition(StateRetriedFailed)
		return nil, &NetworkError{Method: req.Method, URL: c.url(req), Err: err}
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("method", req.Method).Str("path", req.Path).Msg("token refresh failed, logging out")
		c.forceLogout(ctx)
		req.mustTransition(StateRetriedFailed)
		return nil, &UnauthorizedError{Method: req.Method, Path: req.Path, Cause: err}
	}

	req.setBearer(accessToken)
	resp, err := c.send(ctx, req)
	if err != nil {
		req.mustTransition(StateRetriedFailed)
		var upstream *UpstreamError
		if errors.As(err, &upstream) && upstream.Status == http.StatusUnauthorized {
			return nil, &UnauthorizedError{Method: req.Method, Path: req.Path, Cause: err}
		}
		return nil, err
	}

	req.mustTransition(StateRetriedSucceeded)
	return resp, nil
}

// forceLogout drops the stored tokens and sends the user to the login page.
func (c *Client) forceLogout(ctx context.Context) {
	if err := c.sessions.Clear(context.WithoutCancel(ctx)); err != nil {
		c.logger.Error().Err(err).Msg("failed to clear session tokens")
	}
	if !c.onLoginPage() {
		c.navigator.Navigate(c.loginPath)
	}
}

func (c *Client) onLoginPage() bool {
	return strings.Contains(c.navigator.CurrentPath(), c.loginPath)
}

// send performs one HTTP attempt for req.
func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	header, body := req.snapshot()

	accessToken, err := c.sessions.AccessToken(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[send] reading access token")
	}
	if accessToken != "" {
		header.Set("Authorization", "Bearer "+accessToken)
	}
	if header.Get("X-Request-ID") == "" {
		header.Set("X-Request-ID", uuid.New().String())
	}

	target := c.url(req)
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[send] %s %s: %v", req.Method, req.Path, err)
	}
	httpReq.Header = header

	req.countAttempt()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", req.Method).Str("path", req.Path).Msg("request failed")
		return nil, &NetworkError{Method: req.Method, URL: target, Err: err}
	}
	defer httpResp.Body.Close()

	payload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &NetworkError{Method: req.Method, URL: target, Err: err}
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", httpResp.StatusCode).
		Str("request_id", header.Get("X-Request-ID")).
		Msg("api call")

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		upstream := &UpstreamError{
			Method: req.Method,
			Path:   req.Path,
			Status: httpResp.StatusCode,
			Body:   payload,
		}
		_ = json.Unmarshal(payload, &upstream.Payload)
		return nil, upstream
	}

	return &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Body:   payload,
	}, nil
}

func (c *Client) url(req *Request) string {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}
	return target
}

// Get issues a GET for path with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodGet, path, WithQuery(query)))
}

// Post issues a POST with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPost, path, WithJSON(body)))
}

// Put issues a PUT with body encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPut, path, WithJSON(body)))
}

// Delete issues a DELETE with optional query parameters.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodDelete, path, WithQuery(query)))
}

// Upload issues a multipart/form-data POST.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, files ...File) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPost, path, WithMultipart(fields, files...)))
}
