package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-school-client/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	c := config.New()

	require.Equal(t, "schoolctl", c.GetAppName())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "info", c.GetLogLevel())
	require.Equal(t, "http://localhost:8000", c.GetBaseURL())
	require.Equal(t, "/login", c.GetLoginPath())
	require.Equal(t, 30*time.Second, c.GetHTTPTimeout())
	require.Equal(t, config.StoreFile, c.GetSessionStore())
	require.Equal(t, "session.json", filepath.Base(c.GetSessionFile()))
	require.Empty(t, c.GetSessionKey())
	require.Equal(t, 0, c.GetRedisDB())
	require.Zero(t, c.GetRedisTTL())
}

func TestEnvironment(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("SCHOOL_BASE_URL", "https://api.school.test/")
	t.Setenv("SCHOOL_HTTP_TIMEOUT", "5s")
	t.Setenv("SCHOOL_SESSION_STORE", "redis")
	t.Setenv("SCHOOL_REDIS_DB", "3")
	t.Setenv("SCHOOL_REDIS_TTL", "12h")
	t.Setenv("SCHOOL_LOG_LEVEL", "DEBUG")
	c := config.New()

	require.Equal(t, "https://api.school.test", c.GetBaseURL())
	require.Equal(t, 5*time.Second, c.GetHTTPTimeout())
	require.Equal(t, config.StoreRedis, c.GetSessionStore())
	require.Equal(t, 3, c.GetRedisDB())
	require.Equal(t, 12*time.Hour, c.GetRedisTTL())
	require.Equal(t, "debug", c.GetLogLevel())

	t.Setenv("SCHOOL_HTTP_TIMEOUT", "soon")
	t.Setenv("SCHOOL_SESSION_STORE", "postgres")
	t.Setenv("SCHOOL_REDIS_TTL", "-1h")
	require.Equal(t, 30*time.Second, c.GetHTTPTimeout())
	require.Zero(t, c.GetRedisTTL())
	require.Equal(t, config.StoreFile, c.GetSessionStore())
}

func TestLoadAndOverride(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("school_base_url: https://file.school.test\nschool_session_store: memory\n"), 0o600))

	require.NoError(t, config.Load(path, true))
	c := config.New()
	require.Equal(t, "https://file.school.test", c.GetBaseURL())
	require.Equal(t, config.StoreMemory, c.GetSessionStore())

	t.Setenv("SCHOOL_BASE_URL", "https://env.school.test")
	require.Equal(t, "https://env.school.test", c.GetBaseURL())

	config.Override("SCHOOL_BASE_URL", "https://flag.school.test")
	require.Equal(t, "https://flag.school.test", c.GetBaseURL())
}

func TestLoadMissingFile(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	require.NoError(t, config.Load(missing, false))
	require.Error(t, config.Load(missing, true))
	require.NoError(t, config.Load("", true))
}
