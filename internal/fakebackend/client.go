package fakebackend

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-school-client/apiclient"
	"github.com/jrsteele09/go-school-client/sessions"
	fakesessionstore "github.com/jrsteele09/go-school-client/sessions/repofakes"
	"github.com/stretchr/testify/require"
)

// NewClient returns an API client for a started backend whose session already
// holds a valid token pair for userName.
func (s *Server) NewClient(tb testing.TB, userName string, options ...apiclient.ClientOption) *apiclient.Client {
	tb.Helper()

	access, refresh, err := s.IssueTokens(userName)
	require.NoError(tb, err)

	sm := sessions.NewManager(fakesessionstore.NewFakeSessionStore())
	require.NoError(tb, sm.Save(context.Background(), sessions.Credentials{AccessToken: access, RefreshToken: refresh}))

	client, err := apiclient.New(s.URL(), sm, options...)
	require.NoError(tb, err)
	return client
}
