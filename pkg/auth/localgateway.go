package auth

import (
	"context"
	"time"

	"github.com/livekit/livekit-stage/pkg/rtc/types"
)

// LocalGateway signs join credentials in-process.
type LocalGateway struct {
	apiKey    string
	apiSecret string
	ttl       time.Duration
	serverURL string
}

func NewLocalGateway(apiKey, apiSecret string, ttl time.Duration, serverURL string) *LocalGateway {
	return &LocalGateway{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		ttl:       ttl,
		serverURL: serverURL,
	}
}

func (g *LocalGateway) IssueJoinCredential(_ context.Context, room, identity string, mode types.CapabilityMode) (*types.Credential, error) {
	if identity == "" {
		return nil, ErrNoAuthContext
	}
	ttl := g.ttl
	if ttl <= 0 {
		ttl = defaultValidDuration
	}

	token, err := NewAccessToken(g.apiKey, g.apiSecret).
		SetIdentity(identity).
		SetValidFor(ttl).
		AddGrant(JoinGrant(room, mode)).
		ToJWT()
	if err != nil {
		return nil, err
	}

	return &types.Credential{
		Token:     token,
		ServerURL: g.serverURL,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// JoinGrant is the video grant for joining room with the given capability.
func JoinGrant(room string, mode types.CapabilityMode) *VideoGrant {
	return &VideoGrant{
		RoomJoin:     true,
		Room:         room,
		CanSubscribe: true,
		CanPublish:   mode == types.CapabilityPublisher,
	}
}
