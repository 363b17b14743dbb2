package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Claims is the subset of a backend-issued bearer token the client cares about.
// The backend signs tokens with a key the client never sees, so these values
// are informational only and must not be used for authorization decisions.
type Claims struct {
	TokenType string    // "access" or "refresh"
	UserID    string    // user_id claim
	JTI       string    // Unique token ID
	IssuedAt  time.Time // iat
	ExpiresAt time.Time // exp, zero when the token carries none
}

// Inspect decodes a bearer token without verifying its signature.
func Inspect(raw string) (*Claims, error) {
	if raw == "" {
		return nil, apperrors.ErrNoAccessToken
	}

	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, mapClaims); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidToken, "[Inspect] %v", err)
	}

	claims := &Claims{
		TokenType: stringClaim(mapClaims, "token_type"),
		UserID:    stringClaim(mapClaims, "user_id"),
		JTI:       stringClaim(mapClaims, "jti"),
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	return claims, nil
}

// Expired reports whether the token's exp claim is in the past.
// Tokens without an exp claim never expire client-side.
func (c *Claims) Expired() bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !NowTimeFunc().Before(c.ExpiresAt)
}

// TTL returns the remaining lifetime, zero once expired.
func (c *Claims) TTL() time.Duration {
	if c.ExpiresAt.IsZero() || c.Expired() {
		return 0
	}
	return c.ExpiresAt.Sub(NowTimeFunc())
}

func stringClaim(claims jwt.MapClaims, name string) string {
	switch v := claims[name].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
