package refresh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/oauthmodel"
	"github.com/jrsteele09/go-school-client/sessions"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Path is the refresh endpoint, relative to the API base URL.
const Path = "/auth/token/refresh/"

const flightKey = "refresh"

// Manager exchanges the stored refresh token for a new access token.
// Concurrent callers share one in-flight refresh call and its result; a call
// made after the previous one finished starts a new, independent refresh.
type Manager struct {
	endpoint   string
	httpClient *http.Client
	sessions   *sessions.Manager
	group      singleflight.Group
	logger     zerolog.Logger
}

type ManagerOption func(*Manager)

// WithHTTPClient sets the client used for the refresh call. It must not be an
// authenticating client: the refresh call carries no bearer token.
func WithHTTPClient(client *http.Client) ManagerOption {
	return func(m *Manager) {
		m.httpClient = client
	}
}

func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new refresh manager for the API at baseURL.
func NewManager(baseURL string, sessionManager *sessions.Manager, options ...ManagerOption) *Manager {
	m := &Manager{
		endpoint:   strings.TrimRight(baseURL, "/") + Path,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		sessions:   sessionManager,
		logger:     log.Logger,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// Refresh obtains and persists a new access token, returning it.
// The shared call is detached from the first caller's cancellation so one
// caller giving up does not fail every waiter.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	ch := m.group.DoChan(flightKey, func() (interface{}, error) {
		return m.refresh(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Shared {
			m.logger.Debug().Msg("joined in-flight token refresh")
		}
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (m *Manager) refresh(ctx context.Context) (string, error) {
	refreshToken, err := m.sessions.RefreshToken(ctx)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrRefreshFailed, "[Refresh] reading refresh token: %v", err)
	}
	if refreshToken == "" {
		return "", fmt.Errorf("[Refresh] %w: %w", apperrors.ErrRefreshFailed, apperrors.ErrNoRefreshToken)
	}

	body, err := json.Marshal(oauthmodel.RefreshRequest{Refresh: refreshToken})
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrRefreshFailed, "[Refresh] encoding request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrRefreshFailed, "[Refresh] building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	m.logger.Debug().Str("endpoint", m.endpoint).Msg("refreshing access token")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("[Refresh] %w: %w", apperrors.ErrRefreshFailed, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("[Refresh] %w: reading response: %w", apperrors.ErrRefreshFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp oauthmodel.ErrorResponse
		_ = json.Unmarshal(payload, &errResp)
		return "", &StatusError{Status: resp.StatusCode, Payload: errResp}
	}

	var tokens oauthmodel.RefreshResponse
	if err := json.Unmarshal(payload, &tokens); err != nil {
		return "", apperrors.Wrapf(apperrors.ErrRefreshFailed, "[Refresh] decoding response: %v", err)
	}
	if tokens.Access == "" {
		return "", apperrors.Wrapf(apperrors.ErrRefreshFailed, "[Refresh] response has no access token")
	}

	if err := m.sessions.SetAccessToken(ctx, tokens.Access); err != nil {
		return "", apperrors.Wrapf(apperrors.ErrRefreshFailed, "[Refresh] storing access token: %v", err)
	}
	if tokens.Refresh != "" {
		if err := m.sessions.SetRefreshToken(ctx, tokens.Refresh); err != nil {
			return "", apperrors.Wrapf(apperrors.ErrRefreshFailed, "[Refresh] storing rotated refresh token: %v", err)
		}
	}

	m.logger.Info().Msg("access token refreshed")
	return tokens.Access, nil
}

// StatusError is returned when the refresh endpoint answers with a non-2xx status.
type StatusError struct {
	Status  int
	Payload oauthmodel.ErrorResponse
}

func (e *StatusError) Error() string {
	msg := e.Payload.Detail
	if msg == "" {
		msg = e.Payload.Error
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("token refresh failed: %d %s", e.Status, msg)
}

func (e *StatusError) Unwrap() error {
	return apperrors.ErrRefreshFailed
}
