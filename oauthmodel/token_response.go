package oauthmodel

import "encoding/json"

// RefreshResponse is returned by the refresh endpoint on success.
type RefreshResponse struct {
	// Access is the newly minted access token.
	// Example: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
	// Usage: Include in Authorization header: "Bearer <access>"
	// Lifespan: Short-lived (minutes)
	Access string `json:"access"`

	// Refresh is only present when the backend rotates refresh tokens.
	// When set it replaces the stored refresh token.
	Refresh string `json:"refresh,omitempty"`
}

// LoginResponse is returned by the login endpoint on success.
type LoginResponse struct {
	// Access is the access token attached to every subsequent request.
	Access string `json:"access"`

	// Refresh is used only to obtain new access tokens.
	// Lifespan: Long-lived (days)
	Refresh string `json:"refresh"`

	// User is the profile of the logged-in user. Kept raw so it can be
	// cached verbatim and decoded into users.User on demand.
	User json.RawMessage `json:"user"`
}

// ErrorResponse is the error body the backend sends with non-2xx statuses.
// Application views use "error"; the auth framework uses "detail" and "code".
type ErrorResponse struct {
	Error  string `json:"error,omitempty"`
	Detail string `json:"detail,omitempty"`
	Code   string `json:"code,omitempty"`
}
