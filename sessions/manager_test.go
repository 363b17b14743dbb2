package sessions_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/sessions"
	fakesessionstore "github.com/jrsteele09/go-school-client/sessions/repofakes"
	"github.com/stretchr/testify/require"
)

func TestManager_SaveAndClear(t *testing.T) {
	ctx := context.Background()
	store := fakesessionstore.NewFakeSessionStore()
	m := sessions.NewManager(store)

	creds, err := m.Credentials(ctx)
	require.NoError(t, err)
	require.True(t, creds.Empty())

	require.NoError(t, m.Save(ctx, sessions.Credentials{AccessToken: "A1", RefreshToken: "R1"}))
	require.NoError(t, m.SetCurrentUser(ctx, []byte(`{"user_name":"admin1"}`)))

	access, err := m.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "A1", access)

	require.NoError(t, m.SetAccessToken(ctx, "A2"))
	creds, err = m.Credentials(ctx)
	require.NoError(t, err)
	require.Equal(t, sessions.Credentials{AccessToken: "A2", RefreshToken: "R1"}, creds)

	require.NoError(t, m.Clear(ctx))
	require.False(t, store.Has(sessions.AccessTokenKey))
	require.False(t, store.Has(sessions.RefreshTokenKey))

	// Clearing tokens keeps the cached profile.
	user, err := m.CurrentUser(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `{"user_name":"admin1"}`, string(user))

	require.NoError(t, m.ClearCurrentUser(ctx))
	user, err = m.CurrentUser(ctx)
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestManager_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := fakesessionstore.NewFakeSessionStore()
	m := sessions.NewManager(store)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, m.Save(ctx, sessions.Credentials{AccessToken: "A", RefreshToken: "R"}))
			_, err := m.Credentials(ctx)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, 50, store.Writes(sessions.AccessTokenKey))
}

func TestManager_Token(t *testing.T) {
	ctx := context.Background()
	m := sessions.NewManager(fakesessionstore.NewFakeSessionStore())

	_, err := m.Token()
	require.ErrorIs(t, err, apperrors.ErrNoAccessToken)

	exp := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"token_type": "access",
		"exp":        exp.Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, sessions.Credentials{AccessToken: access, RefreshToken: "R1"}))

	tok, err := m.Token()
	require.NoError(t, err)
	require.Equal(t, access, tok.AccessToken)
	require.Equal(t, "R1", tok.RefreshToken)
	require.Equal(t, "Bearer", tok.TokenType)
	require.True(t, exp.Equal(tok.Expiry))

	require.True(t, tok.Valid())

	require.NoError(t, m.SetAccessToken(ctx, "opaque"))
	tok, err = m.OAuth2Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "opaque", tok.AccessToken)
	require.True(t, tok.Expiry.IsZero())
}
