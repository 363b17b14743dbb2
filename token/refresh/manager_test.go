package refresh_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-school-client/internal/fakebackend"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/sessions"
	fakesessionstore "github.com/jrsteele09/go-school-client/sessions/repofakes"
	"github.com/jrsteele09/go-school-client/token"
	"github.com/jrsteele09/go-school-client/token/refresh"
	"github.com/stretchr/testify/require"
)

func newSessions(t *testing.T, access, refreshToken string) *sessions.Manager {
	t.Helper()
	sm := sessions.NewManager(fakesessionstore.NewFakeSessionStore())
	require.NoError(t, sm.Save(context.Background(), sessions.Credentials{AccessToken: access, RefreshToken: refreshToken}))
	return sm
}

func TestManager_Refresh(t *testing.T) {
	backend := fakebackend.Start(t)
	ctx := context.Background()

	_, refreshToken, err := backend.IssueTokens("teacher7")
	require.NoError(t, err)
	sm := newSessions(t, "stale", refreshToken)

	m := refresh.NewManager(backend.URL()+"/", sm)
	access, err := m.Refresh(ctx)
	require.NoError(t, err)

	stored, err := sm.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, access, stored)

	claims, err := token.Inspect(access)
	require.NoError(t, err)
	require.Equal(t, "access", claims.TokenType)
	require.Equal(t, "teacher7", claims.UserID)
	require.False(t, claims.Expired())

	// Without rotation the refresh token is untouched.
	storedRefresh, err := sm.RefreshToken(ctx)
	require.NoError(t, err)
	require.Equal(t, refreshToken, storedRefresh)
}

func TestManager_RefreshRotation(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.AcceptRefreshToken("R1", "admin1")
	backend.QueueAccessTokens("A2")
	backend.RotateRefreshTokens(true)
	ctx := context.Background()

	sm := newSessions(t, "A1", "R1")
	access, err := refresh.NewManager(backend.URL(), sm).Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, "A2", access)

	creds, err := sm.Credentials(ctx)
	require.NoError(t, err)
	require.Equal(t, "A2", creds.AccessToken)
	require.NotEqual(t, "R1", creds.RefreshToken)
}

func TestManager_RefreshRejected(t *testing.T) {
	backend := fakebackend.Start(t)
	sm := newSessions(t, "A1", "unknown")

	_, err := refresh.NewManager(backend.URL(), sm).Refresh(context.Background())
	require.ErrorIs(t, err, apperrors.ErrRefreshFailed)

	var statusErr *refresh.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.Status)
	require.Equal(t, "token_not_valid", statusErr.Payload.Code)

	// A failed refresh leaves storage alone; clearing is the caller's decision.
	access, err := sm.AccessToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "A1", access)
}

func TestManager_NoRefreshToken(t *testing.T) {
	backend := fakebackend.Start(t)
	sm := sessions.NewManager(fakesessionstore.NewFakeSessionStore())

	_, err := refresh.NewManager(backend.URL(), sm).Refresh(context.Background())
	require.ErrorIs(t, err, apperrors.ErrRefreshFailed)
	require.ErrorIs(t, err, apperrors.ErrNoRefreshToken)
	require.Equal(t, 0, backend.RefreshCalls())
}

func TestManager_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>"},
		{name: "no access token", body: `{"refresh":"R2"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			sm := newSessions(t, "A1", "R1")
			_, err := refresh.NewManager(srv.URL, sm).Refresh(context.Background())
			require.ErrorIs(t, err, apperrors.ErrRefreshFailed)

			creds, err := sm.Credentials(context.Background())
			require.NoError(t, err)
			require.Equal(t, sessions.Credentials{AccessToken: "A1", RefreshToken: "R1"}, creds)
		})
	}
}

func TestManager_TransportError(t *testing.T) {
	sm := newSessions(t, "A1", "R1")
	m := refresh.NewManager("http://127.0.0.1:1", sm, refresh.WithHTTPClient(&http.Client{Timeout: time.Second}))

	_, err := m.Refresh(context.Background())
	require.ErrorIs(t, err, apperrors.ErrRefreshFailed)
}

func TestManager_ConcurrentCallersShareOneCall(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.AcceptRefreshToken("R1", "admin1")
	backend.QueueAccessTokens("A2", "A3")
	backend.SetRefreshDelay(150 * time.Millisecond)

	m := refresh.NewManager(backend.URL(), newSessions(t, "A1", "R1"))

	const callers = 5
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			access, err := m.Refresh(context.Background())
			if err == nil {
				results[i] = access
			}
		}(i)
	}
	wg.Wait()

	for _, access := range results {
		require.Equal(t, "A2", access)
	}
	require.Equal(t, 1, backend.RefreshCalls())

	// Once the shared call has finished, the next refresh is a new call.
	access, err := m.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "A3", access)
	require.Equal(t, 2, backend.RefreshCalls())
}

func TestManager_CallerCancellationDoesNotAbortSharedCall(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.AcceptRefreshToken("R1", "admin1")
	backend.QueueAccessTokens("A2")
	backend.SetRefreshDelay(100 * time.Millisecond)

	sm := newSessions(t, "A1", "R1")
	m := refresh.NewManager(backend.URL(), sm)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := m.Refresh(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	require.Eventually(t, func() bool {
		access, err := sm.AccessToken(context.Background())
		return err == nil && access == "A2"
	}, time.Second, 10*time.Millisecond)
}
