package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/token"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-the-backend-key"))
	require.NoError(t, err)
	return raw
}

func TestInspect(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token.NowTimeFunc = func() time.Time { return now }
	t.Cleanup(func() { token.NowTimeFunc = time.Now })

	t.Run("access token", func(t *testing.T) {
		raw := signed(t, jwt.MapClaims{
			"token_type": "access",
			"user_id":    float64(42),
			"jti":        "abc",
			"iat":        now.Add(-time.Minute).Unix(),
			"exp":        now.Add(4 * time.Minute).Unix(),
		})

		claims, err := token.Inspect(raw)
		require.NoError(t, err)
		require.Equal(t, "access", claims.TokenType)
		require.Equal(t, "42", claims.UserID)
		require.Equal(t, "abc", claims.JTI)
		require.False(t, claims.Expired())
		require.Equal(t, 4*time.Minute, claims.TTL())
	})

	t.Run("expired token", func(t *testing.T) {
		raw := signed(t, jwt.MapClaims{"exp": now.Add(-time.Second).Unix()})

		claims, err := token.Inspect(raw)
		require.NoError(t, err)
		require.True(t, claims.Expired())
		require.Zero(t, claims.TTL())
	})

	t.Run("no exp never expires", func(t *testing.T) {
		claims, err := token.Inspect(signed(t, jwt.MapClaims{"user_id": "7"}))
		require.NoError(t, err)
		require.False(t, claims.Expired())
		require.True(t, claims.ExpiresAt.IsZero())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := token.Inspect("")
		require.ErrorIs(t, err, apperrors.ErrNoAccessToken)
	})

	t.Run("opaque token", func(t *testing.T) {
		_, err := token.Inspect("A1")
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
