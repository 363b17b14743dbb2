package fakebackend

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// tokenCreator mints HS256 tokens shaped like the ones SimpleJWT issues.
type tokenCreator struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func (c *tokenCreator) create(userName, tokenType string, ttl time.Duration) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"token_type": tokenType,
		"user_id":    userName,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
		"jti":        uuid.New().String(),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, nil
}

// verify checks signature, expiry and token type, returning the user_id claim.
func (c *tokenCreator) verify(raw, tokenType string) (string, error) {
	claims := jwtlib.MapClaims{}
	_, err := jwtlib.ParseWithClaims(raw, claims, func(t *jwtlib.Token) (interface{}, error) {
		return c.key, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(NowTimeFunc),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	if claims["token_type"] != tokenType {
		return "", fmt.Errorf("token has wrong type %v", claims["token_type"])
	}
	userName, _ := claims["user_id"].(string)
	return userName, nil
}
