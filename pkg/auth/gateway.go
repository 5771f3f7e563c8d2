package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
)

// AuthSource supplies the bearer token of the signed-in user.
// An empty token means there is no authentication context.
type AuthSource interface {
	AuthToken(ctx context.Context) (string, error)
}

type AuthSourceFunc func(ctx context.Context) (string, error)

func (f AuthSourceFunc) AuthToken(ctx context.Context) (string, error) {
	return f(ctx)
}

type StaticAuthSource string

func (s StaticAuthSource) AuthToken(_ context.Context) (string, error) {
	return string(s), nil
}

type TokenRequest struct {
	Room     string `json:"room"`
	Identity string `json:"identity"`
	Mode     string `json:"mode"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ServerURL string `json:"server_url,omitempty"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
}

// HTTPGateway requests join credentials from a remote token endpoint.
type HTTPGateway struct {
	url    string
	auth   AuthSource
	client *http.Client
	logger logger.Logger
}

func NewHTTPGateway(conf config.CredentialsConfig, auth AuthSource) *HTTPGateway {
	return &HTTPGateway{
		url:  conf.GatewayURL,
		auth: auth,
		client: &http.Client{
			Timeout: conf.RequestTimeout,
		},
		logger: logger.GetLogger().WithValues("gateway", conf.GatewayURL),
	}
}

func (g *HTTPGateway) IssueJoinCredential(ctx context.Context, room, identity string, mode types.CapabilityMode) (*types.Credential, error) {
	if g.url == "" {
		return nil, ErrGatewayNotSet
	}
	if g.auth == nil {
		return nil, ErrNoAuthContext
	}
	bearer, err := g.auth.AuthToken(ctx)
	if err != nil {
		return nil, errors.Wrap(ErrNoAuthContext, err.Error())
	}
	if bearer == "" {
		return nil, ErrNoAuthContext
	}

	body, err := json.Marshal(&TokenRequest{
		Room:     room,
		Identity: identity,
		Mode:     mode.String(),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not reach credential gateway")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, ErrUnauthenticated
	case http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("credential gateway returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	res := &TokenResponse{}
	if err := json.NewDecoder(resp.Body).Decode(res); err != nil {
		return nil, errors.Wrap(err, "could not decode credential")
	}
	if res.Token == "" {
		return nil, ErrEmptyCredentials
	}

	cred := &types.Credential{
		Token:     res.Token,
		ServerURL: res.ServerURL,
	}
	if res.ExpiresAt > 0 {
		cred.ExpiresAt = time.Unix(res.ExpiresAt, 0)
	} else {
		cred.ExpiresAt = tokenExpiry(res.Token)
	}
	g.logger.Debugw("issued join credential", "room", room, "identity", identity, "mode", mode)
	return cred, nil
}

func tokenExpiry(raw string) time.Time {
	claims := &ClaimGrants{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
