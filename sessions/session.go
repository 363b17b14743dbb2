package sessions

// Fixed storage keys. They match the keys the browser dashboard keeps in
// localStorage so a shared store (e.g. Redis) can be read by either front-end.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
	CurrentUserKey  = "current_user"
)

// Credentials is the bearer token pair issued at login.
// The access token is short-lived and attached to every request; the refresh
// token is only ever sent to the refresh endpoint to mint a new access token.
type Credentials struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// Empty reports whether neither token is present.
func (c Credentials) Empty() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}
