package apiclient_test

import (
	"testing"

	"github.com/jrsteele09/go-school-client/apiclient"
	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	var seen []string
	loc := apiclient.NewLocation("/dashboard", apiclient.OnNavigate(func(path string) {
		seen = append(seen, path)
	}))
	require.Equal(t, "/dashboard", loc.CurrentPath())
	require.Empty(t, loc.History())

	loc.Navigate("/login")
	loc.Navigate("/dashboard")

	require.Equal(t, "/dashboard", loc.CurrentPath())
	require.Equal(t, []string{"/login", "/dashboard"}, loc.History())
	require.Equal(t, seen, loc.History())
}
