package auth

import (
	"errors"
)

var (
	ErrKeysMissing      = errors.New("missing API key or secret key")
	ErrNoAuthContext    = errors.New("no authentication context")
	ErrUnauthenticated  = errors.New("credential request is not authenticated")
	ErrUnauthorized     = errors.New("credential request is not authorized for this room")
	ErrInvalidToken     = errors.New("invalid access token")
	ErrGatewayNotSet    = errors.New("credential gateway url is not configured")
	ErrEmptyCredentials = errors.New("credential gateway returned an empty token")
)

// TokenVerifier checks the signature of a parsed token.
type TokenVerifier interface {
	Identity() string
	APIKey() string
	Verify(secret string) (*ClaimGrants, error)
}

// KeyProvider resolves API secrets by API key.
type KeyProvider interface {
	GetSecret(key string) string
	NumKeys() int
}
