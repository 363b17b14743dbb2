package config

import (
	"strings"
	"time"
)

const (
	appNameVar  = "APP_NAME"
	envVar      = "ENV"
	logLevelVar = "SCHOOL_LOG_LEVEL"

	baseURLVar       = "SCHOOL_BASE_URL"
	loginPathVar     = "SCHOOL_LOGIN_PATH"
	dashboardPathVar = "SCHOOL_DASHBOARD_PATH"
	httpTimeoutVar   = "SCHOOL_HTTP_TIMEOUT"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "schoolctl")
}

func (EnvVars) GetEnv() string {
	return strings.ToUpper(GetEnv(envVar, "DEV"))
}

func (EnvVars) GetLogLevel() string {
	return strings.ToLower(GetEnv(logLevelVar, "info"))
}

type Client struct{}

var _ ClientConfig = Client{}

// GetBaseURL returns the backend API root, e.g. "https://api.school.example".
// Trailing slashes are trimmed so paths can be appended directly.
func (Client) GetBaseURL() string {
	return strings.TrimRight(GetEnv(baseURLVar, "http://localhost:8000"), "/")
}

func (Client) GetLoginPath() string {
	return GetEnv(loginPathVar, "/login")
}

func (Client) GetDashboardPath() string {
	return GetEnv(dashboardPathVar, "/dashboard")
}

func (Client) GetHTTPTimeout() time.Duration {
	return GetDuration(httpTimeoutVar, 30*time.Second)
}

// GetEnv looks envVar up in the overrides, the environment and the config
// file, in that order.
func GetEnv(envVar, defaultValue string) string {
	value := Conf.GetString(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetDuration parses envVar with time.ParseDuration, falling back to
// defaultValue when unset or malformed.
func GetDuration(envVar string, defaultValue time.Duration) time.Duration {
	value := GetEnv(envVar, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
