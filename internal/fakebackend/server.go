// Package fakebackend is an in-process stand-in for the school API. It issues
// and verifies SimpleJWT-style tokens, serves login and refresh, and lets tests
// script failures and inspect every call made against it.
package fakebackend

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// Account is a user the fake backend will log in.
type Account struct {
	UserName string
	Password string
	Profile  map[string]any
}

// Recorded is one request as the backend received it.
type Recorded struct {
	Header http.Header
	Query  url.Values
	Body   []byte
}

type Server struct {
	mux        *http.ServeMux
	routes     []string
	httpServer *httptest.Server
	tokens     *tokenCreator
	logger     zerolog.Logger

	mu            sync.Mutex
	handlers      map[string]http.HandlerFunc
	accounts      map[string]Account
	refreshTokens map[string]string
	staticAccess  map[string]string
	revoked       map[string]bool
	alwaysReject  map[string]bool
	nextAccess    []string
	rotate        bool
	refreshStatus int
	refreshDelay  time.Duration
	requests      map[string][]Recorded
}

type Option func(*Server)

// WithAccessTTL sets the lifetime of minted access tokens (default 5m).
func WithAccessTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.tokens.accessTTL = ttl
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New builds an unstarted backend. Use it as an http.Handler or call Start.
func New(options ...Option) *Server {
	s := &Server{
		mux: http.NewServeMux(),
		tokens: &tokenCreator{
			key:        []byte("fakebackend-signing-key"),
			accessTTL:  5 * time.Minute,
			refreshTTL: 24 * time.Hour,
		},
		logger:        zerolog.Nop(),
		handlers:      make(map[string]http.HandlerFunc),
		accounts:      make(map[string]Account),
		refreshTokens: make(map[string]string),
		staticAccess:  make(map[string]string),
		revoked:       make(map[string]bool),
		alwaysReject:  make(map[string]bool),
		requests:      make(map[string][]Recorded),
	}
	for _, opt := range options {
		opt(s)
	}

	s.RegisterRouteFunc(routeKey(http.MethodPost, RouteLogin), ChainMiddleware(s.LoginHandler(), s.RecordMiddleware, s.LoggingMiddleware))
	s.RegisterRouteFunc(routeKey(http.MethodPost, RouteTokenRefresh), ChainMiddleware(s.RefreshHandler(), s.RecordMiddleware, s.LoggingMiddleware))
	return s
}

// Start runs the backend on a loopback listener until tb finishes.
func Start(tb testing.TB, options ...Option) *Server {
	tb.Helper()
	s := New(options...)
	s.httpServer = httptest.NewServer(s)
	tb.Cleanup(s.httpServer.Close)
	return s
}

// URL is the base URL of a started backend.
func (s *Server) URL() string {
	if s.httpServer == nil {
		return ""
	}
	return s.httpServer.URL
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes lists every registered pattern in registration order.
func (s *Server) Routes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.routes...)
}

// Handle serves handler at method+path behind bearer authentication.
// Registering the same route again replaces the handler.
func (s *Server) Handle(method, path string, handler http.HandlerFunc) {
	s.register(method, path, handler, true)
}

// HandlePublic serves handler at method+path without authentication.
func (s *Server) HandlePublic(method, path string, handler http.HandlerFunc) {
	s.register(method, path, handler, false)
}

// HandleJSON answers method+path with status and body encoded as JSON.
func (s *Server) HandleJSON(method, path string, status int, body any) {
	s.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, status, body)
	})
}

// HandleData answers method+path with 200 and {"data": data, "message": message}.
func (s *Server) HandleData(method, path string, data any, message string) {
	s.HandleJSON(method, path, http.StatusOK, map[string]any{"data": data, "message": message})
}

func (s *Server) register(method, path string, handler http.HandlerFunc, protected bool) {
	key := routeKey(method, path)
	if protected {
		handler = s.RequireAuth(handler)
	}

	s.mu.Lock()
	_, exists := s.handlers[key]
	s.handlers[key] = handler
	s.mu.Unlock()

	if exists {
		return
	}
	s.RegisterRouteFunc(key, ChainMiddleware(s.dispatch(key), s.RecordMiddleware, s.LoggingMiddleware))
}

func (s *Server) dispatch(key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		handler := s.handlers[key]
		s.mu.Unlock()
		handler(w, r)
	}
}

// AddAccount makes userName/password valid for login.
func (s *Server) AddAccount(account Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.UserName] = account
}

// IssueTokens mints a signed access/refresh pair for userName.
func (s *Server) IssueTokens(userName string) (access, refresh string, err error) {
	access, err = s.tokens.create(userName, tokenTypeAccess, s.tokens.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.tokens.create(userName, tokenTypeRefresh, s.tokens.refreshTTL)
	if err != nil {
		return "", "", err
	}
	s.mu.Lock()
	s.refreshTokens[refresh] = userName
	s.mu.Unlock()
	return access, refresh, nil
}

// AcceptAccessToken makes an opaque value a valid bearer token for userName.
func (s *Server) AcceptAccessToken(token, userName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staticAccess[token] = userName
	delete(s.revoked, token)
}

// AcceptRefreshToken makes an opaque value a valid refresh token for userName.
func (s *Server) AcceptRefreshToken(token, userName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshTokens[token] = userName
}

// RevokeAccessToken makes every later request carrying token fail with 401.
func (s *Server) RevokeAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = true
}

// QueueAccessTokens sets the opaque access tokens handed out by the next
// refresh calls, in order. Once the queue is empty refresh mints JWTs.
func (s *Server) QueueAccessTokens(tokens ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextAccess = append(s.nextAccess, tokens...)
}

// RotateRefreshTokens makes refresh also return a new refresh token.
func (s *Server) RotateRefreshTokens(rotate bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotate = rotate
}

// FailRefresh makes the refresh endpoint answer with status. Zero restores success.
func (s *Server) FailRefresh(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshStatus = status
}

// SetRefreshDelay holds every refresh response for d.
func (s *Server) SetRefreshDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshDelay = d
}

// RejectAlways makes method+path answer 401 whatever token is presented.
func (s *Server) RejectAlways(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alwaysReject[routeKey(method, path)] = true
}

// Hits counts requests received on method+path.
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests[routeKey(method, path)])
}

// RefreshCalls counts requests received on the refresh endpoint.
func (s *Server) RefreshCalls() int {
	return s.Hits(http.MethodPost, RouteTokenRefresh)
}

// Requests returns every request received on method+path, oldest first.
func (s *Server) Requests(method, path string) []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests[routeKey(method, path)]...)
}

// LastRequest returns the most recent request on method+path.
func (s *Server) LastRequest(method, path string) (Recorded, bool) {
	reqs := s.Requests(method, path)
	if len(reqs) == 0 {
		return Recorded{}, false
	}
	return reqs[len(reqs)-1], true
}

// Authorizations returns the Authorization header of each request on method+path.
func (s *Server) Authorizations(method, path string) []string {
	reqs := s.Requests(method, path)
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.Header.Get("Authorization"))
	}
	return out
}

func (s *Server) record(r *http.Request) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	r.Body = io.NopCloser(bytesReader(body))

	s.mu.Lock()
	defer s.mu.Unlock()
	key := routeKey(r.Method, r.URL.Path)
	s.requests[key] = append(s.requests[key], Recorded{
		Header: r.Header.Clone(),
		Query:  r.URL.Query(),
		Body:   body,
	})
	return nil
}
