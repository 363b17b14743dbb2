package oauthmodel

// RefreshRequest is the body sent to the token refresh endpoint.
// Endpoint: POST {base}/auth/token/refresh/
type RefreshRequest struct {
	// Refresh is the long-lived refresh token issued at login.
	// Required: Yes
	// Example: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
	// Security: Never attach this to any other request
	Refresh string `json:"refresh"`
}

// LoginRequest holds the credentials posted to the login endpoint.
// Endpoint: POST {base}/auth/login/
type LoginRequest struct {
	// UserName is the account's unique login name (not the email).
	// Required: Yes
	// Example: "admin1"
	UserName string `json:"user_name" validate:"required"`

	// Password is the plaintext password, sent over TLS only.
	// Required: Yes
	// Security: Never log or expose this value
	Password string `json:"password" validate:"required"`
}
