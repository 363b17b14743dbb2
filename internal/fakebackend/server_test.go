package fakebackend_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-school-client/internal/fakebackend"
	"github.com/jrsteele09/go-school-client/oauthmodel"
	"github.com/jrsteele09/go-school-client/token"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer_LoginAndProtectedRoute(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.AddAccount(fakebackend.Account{UserName: "admin1", Password: "Secret#1", Profile: map[string]any{"role": "Admin"}})
	backend.Handle(http.MethodGet, "/whoami", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fakebackend.UserName(r.Context())))
	})

	resp := post(t, backend.URL()+fakebackend.RouteLogin, oauthmodel.LoginRequest{UserName: "admin1", Password: "wrong"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = post(t, backend.URL()+fakebackend.RouteLogin, oauthmodel.LoginRequest{UserName: "admin1", Password: "Secret#1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login oauthmodel.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	require.JSONEq(t, `{"user_name":"admin1","role":"Admin"}`, string(login.User))

	claims, err := token.Inspect(login.Access)
	require.NoError(t, err)
	require.Equal(t, "admin1", claims.UserID)

	req, err := http.NewRequest(http.MethodGet, backend.URL()+"/whoami", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+login.Access)
	who, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer who.Body.Close()
	require.Equal(t, http.StatusOK, who.StatusCode)

	// Refresh tokens are not accepted as bearer tokens.
	req.Header.Set("Authorization", "Bearer "+login.Refresh)
	rejected, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer rejected.Body.Close()
	require.Equal(t, http.StatusUnauthorized, rejected.StatusCode)

	require.Equal(t, 2, backend.Hits(http.MethodGet, "/whoami"))
	require.Contains(t, backend.Routes(), "GET /whoami")
}

func TestServer_RefreshFailure(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.AcceptRefreshToken("R1", "admin1")
	backend.FailRefresh(http.StatusUnauthorized)

	resp := post(t, backend.URL()+fakebackend.RouteTokenRefresh, oauthmodel.RefreshRequest{Refresh: "R1"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	backend.FailRefresh(0)
	resp = post(t, backend.URL()+fakebackend.RouteTokenRefresh, oauthmodel.RefreshRequest{Refresh: "R1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, backend.RefreshCalls())
}
