package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/jrsteele09/go-school-client/apiclient"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/internal/validate"
	"github.com/jrsteele09/go-school-client/oauthmodel"
	"github.com/jrsteele09/go-school-client/sessions"
	"github.com/jrsteele09/go-school-client/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoginPath is the backend endpoint that exchanges credentials for tokens.
const LoginPath = "/auth/login/"

// Service logs users in and out and reports on the stored session.
type Service struct {
	client        *apiclient.Client
	sessions      *sessions.Manager
	dashboardPath string           // Fallback landing page when the role has none
	nowTime       func() time.Time // nowTime function (injectable for testing)
	logger        zerolog.Logger
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithDashboardPath sets where users land after login when their role has no dashboard.
func WithDashboardPath(path string) ServiceOption {
	return func(s *Service) {
		s.dashboardPath = path
	}
}

func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates an auth service on top of client and its session manager.
func NewService(client *apiclient.Client, options ...ServiceOption) (*Service, error) {
	if client == nil {
		return nil, errors.New("[NewService] client is required")
	}

	s := &Service{
		client:        client,
		sessions:      client.Sessions(),
		dashboardPath: "/dashboard",
		nowTime:       time.Now,
		logger:        log.Logger,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Login exchanges credentials for a token pair, stores it with the returned
// user and lands on the user's dashboard. The login call is made from the
// login page, so a 401 is reported as bad credentials, never refreshed.
func (s *Service) Login(ctx context.Context, userName, password string) (*users.User, error) {
	creds := oauthmodel.LoginRequest{UserName: userName, Password: password}
	if err := validate.Struct(creds); err != nil {
		return nil, err
	}

	nav := s.client.Navigator()
	if nav.CurrentPath() != s.client.LoginPath() {
		nav.Navigate(s.client.LoginPath())
	}

	resp, err := s.client.Do(ctx, apiclient.NewRequest(http.MethodPost, LoginPath, apiclient.WithJSON(creds)))
	if err != nil {
		var upstream *apiclient.UpstreamError
		if errors.As(err, &upstream) && upstream.Status == http.StatusUnauthorized {
			return nil, apperrors.Wrapf(LoginRejectedErr, "%s", upstream.Message())
		}
		return nil, err
	}

	var login oauthmodel.LoginResponse
	if err := resp.Decode(&login); err != nil {
		return nil, err
	}
	if login.Access == "" || login.Refresh == "" {
		return nil, NoTokensErr
	}

	user, err := users.Decode(login.User)
	if err != nil {
		return nil, errors.Wrap(err, "[Login] decoding user")
	}

	if err := s.sessions.Save(ctx, sessions.Credentials{AccessToken: login.Access, RefreshToken: login.Refresh}); err != nil {
		return nil, errors.Wrap(err, "[Login] saving tokens")
	}
	if err := s.sessions.SetCurrentUser(ctx, login.User); err != nil {
		return nil, errors.Wrap(err, "[Login] saving user")
	}

	s.logger.Info().Str("user_name", user.UserName).Str("role", string(user.Role)).Msg("logged in")

	landing := s.dashboardPath
	if user.Role.Valid() {
		landing = user.Role.DashboardPath()
	}
	nav.Navigate(landing)
	return user, nil
}

// Logout forgets the tokens and the cached user and returns to the login page.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return errors.Wrap(err, "[Logout]")
	}
	if err := s.sessions.ClearCurrentUser(ctx); err != nil {
		return errors.Wrap(err, "[Logout]")
	}
	s.client.Navigator().Navigate(s.client.LoginPath())
	s.logger.Info().Msg("logged out")
	return nil
}

// CurrentUser returns the user cached at login, or ErrNotAuthenticated.
func (s *Service) CurrentUser(ctx context.Context) (*users.User, error) {
	raw, err := s.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return users.Decode(raw)
}

// IsAuthenticated reports whether a token pair and a user are stored. It does
// not contact the backend: an expired access token still counts, since the
// client refreshes it on first use.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	creds, err := s.sessions.Credentials(ctx)
	if err != nil || creds.AccessToken == "" || creds.RefreshToken == "" {
		return false
	}
	_, err = s.CurrentUser(ctx)
	return err == nil
}

// Status summarises the stored session.
type Status struct {
	Authenticated   bool          `json:"authenticated" yaml:"authenticated"`
	User            *users.User   `json:"user,omitempty" yaml:"user,omitempty"`
	AccessExpiresAt time.Time     `json:"access_expires_at,omitempty" yaml:"access_expires_at,omitempty"`
	AccessTTL       time.Duration `json:"access_ttl" yaml:"access_ttl"`
	AccessExpired   bool          `json:"access_expired" yaml:"access_expired"`
	HasRefreshToken bool          `json:"has_refresh_token" yaml:"has_refresh_token"`
}

// Status reports who is logged in and how long the access token has left.
// Opaque (non-JWT) access tokens report a zero expiry.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	creds, err := s.sessions.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	st := &Status{
		Authenticated:   s.IsAuthenticated(ctx),
		HasRefreshToken: creds.RefreshToken != "",
	}
	if user, err := s.CurrentUser(ctx); err == nil {
		st.User = user
	}

	if tok, err := s.sessions.OAuth2Token(ctx); err == nil && !tok.Expiry.IsZero() {
		st.AccessExpiresAt = tok.Expiry
		if now := s.nowTime(); now.Before(tok.Expiry) {
			st.AccessTTL = tok.Expiry.Sub(now)
		} else {
			st.AccessExpired = true
		}
	}
	return st, nil
}

