package fakebackend

import (
	"bytes"
	"context"
	"net/http"
	"strings"
)

type contextKey string

// ContextKeyUserName carries the authenticated user for protected handlers.
const ContextKeyUserName contextKey = "user_name"

// UserName returns the authenticated user stored by RequireAuth.
func UserName(ctx context.Context) string {
	v, _ := ctx.Value(ContextKeyUserName).(string)
	return v
}

func ChainMiddleware(routeFunction http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler)
	}
	return chainedHandler
}

func (s *Server) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("fakebackend")
		next(w, r)
	}
}

// RecordMiddleware keeps a copy of each request for later inspection.
func (s *Server) RecordMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.record(r); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
			return
		}
		next(w, r)
	}
}

// RequireAuth validates the bearer token the way SimpleJWT does and answers
// 401 {"detail", "code"} when it is missing, expired, revoked or malformed.
func (s *Server) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.", "not_authenticated")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			writeDetail(w, http.StatusUnauthorized, "Authorization header must contain two space-delimited values", "bad_authorization_header")
			return
		}

		userName, ok := s.authenticate(r.Method, r.URL.Path, parts[1])
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Given token not valid for any token type", "token_not_valid")
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUserName, userName)
		next(w, r.WithContext(ctx))
	}
}

func (s *Server) authenticate(method, path, raw string) (string, bool) {
	s.mu.Lock()
	rejected := s.alwaysReject[routeKey(method, path)] || s.revoked[raw]
	userName, static := s.staticAccess[raw]
	s.mu.Unlock()

	if rejected {
		return "", false
	}
	if static {
		return userName, true
	}
	userName, err := s.tokens.verify(raw, tokenTypeAccess)
	if err != nil {
		return "", false
	}
	return userName, true
}

func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}
