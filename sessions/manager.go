package sessions

import (
	"context"
	"sync"

	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Manager is the single owner of the persisted token pair. Every read and
// write of the credentials goes through it, and writes are serialized.
type Manager struct {
	store  Store
	mu     sync.RWMutex
	logger zerolog.Logger
}

type ManagerOption func(*Manager)

func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a session manager on top of store.
func NewManager(store Store, options ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		logger: log.Logger,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// AccessToken returns the stored access token, or "" when there is none.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.get(ctx, AccessTokenKey)
}

// RefreshToken returns the stored refresh token, or "" when there is none.
func (m *Manager) RefreshToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.get(ctx, RefreshTokenKey)
}

// Credentials returns both tokens as one consistent snapshot.
func (m *Manager) Credentials(ctx context.Context) (Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	access, err := m.get(ctx, AccessTokenKey)
	if err != nil {
		return Credentials{}, err
	}
	refresh, err := m.get(ctx, RefreshTokenKey)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{AccessToken: access, RefreshToken: refresh}, nil
}

// Save persists a freshly issued token pair, as returned by login.
func (m *Manager) Save(ctx context.Context, creds Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ctx, AccessTokenKey, creds.AccessToken); err != nil {
		return errors.Wrap(err, "[Save] access token")
	}
	if err := m.store.Set(ctx, RefreshTokenKey, creds.RefreshToken); err != nil {
		return errors.Wrap(err, "[Save] refresh token")
	}
	return nil
}

// SetAccessToken overwrites the access token, leaving the refresh token as is.
func (m *Manager) SetAccessToken(ctx context.Context, accessToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ctx, AccessTokenKey, accessToken); err != nil {
		return errors.Wrap(err, "[SetAccessToken]")
	}
	return nil
}

// SetRefreshToken overwrites the refresh token. Used when the backend rotates it.
func (m *Manager) SetRefreshToken(ctx context.Context, refreshToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ctx, RefreshTokenKey, refreshToken); err != nil {
		return errors.Wrap(err, "[SetRefreshToken]")
	}
	return nil
}

// Clear removes both tokens. The cached user profile is left alone.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, AccessTokenKey, RefreshTokenKey); err != nil {
		return errors.Wrap(err, "[Clear]")
	}
	m.logger.Debug().Msg("session tokens cleared")
	return nil
}

// SetCurrentUser caches the raw JSON profile returned at login.
func (m *Manager) SetCurrentUser(ctx context.Context, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ctx, CurrentUserKey, string(raw)); err != nil {
		return errors.Wrap(err, "[SetCurrentUser]")
	}
	return nil
}

// CurrentUser returns the cached profile JSON, or nil when nobody is logged in.
func (m *Manager) CurrentUser(ctx context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, err := m.get(ctx, CurrentUserKey)
	if err != nil || raw == "" {
		return nil, err
	}
	return []byte(raw), nil
}

// ClearCurrentUser drops the cached profile.
func (m *Manager) ClearCurrentUser(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, CurrentUserKey); err != nil {
		return errors.Wrap(err, "[ClearCurrentUser]")
	}
	return nil
}

// Token implements oauth2.TokenSource so the stored session can back an
// oauth2.Transport. It never refreshes; that is the API client's job.
func (m *Manager) Token() (*oauth2.Token, error) {
	return m.OAuth2Token(context.Background())
}

var _ oauth2.TokenSource = (*Manager)(nil)

// OAuth2Token returns the stored session as an oauth2.Token. Expiry is taken
// from the access token's exp claim and stays zero for opaque tokens.
func (m *Manager) OAuth2Token(ctx context.Context) (*oauth2.Token, error) {
	creds, err := m.Credentials(ctx)
	if err != nil {
		return nil, err
	}
	if creds.AccessToken == "" {
		return nil, apperrors.ErrNoAccessToken
	}

	tok := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    "Bearer",
	}
	if claims, err := token.Inspect(creds.AccessToken); err == nil {
		tok.Expiry = claims.ExpiresAt
	}
	return tok, nil
}

func (m *Manager) get(ctx context.Context, key string) (string, error) {
	v, err := m.store.Get(ctx, key)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "[Get] %s", key)
	}
	return v, nil
}
