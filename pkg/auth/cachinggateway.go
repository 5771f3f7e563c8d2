package auth

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/livekit/livekit-stage/pkg/rtc/types"
)

const defaultCacheSize = 64

// CachingGateway reuses credentials until they are within buffer of expiring.
// Concurrent requests for the same key share a single upstream fetch.
type CachingGateway struct {
	upstream types.CredentialGateway
	buffer   time.Duration

	cache *lru.Cache[string, *types.Credential]
	group singleflight.Group
}

func NewCachingGateway(upstream types.CredentialGateway, size int, buffer time.Duration) *CachingGateway {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, _ := lru.New[string, *types.Credential](size)
	return &CachingGateway{
		upstream: upstream,
		buffer:   buffer,
		cache:    cache,
	}
}

func (g *CachingGateway) IssueJoinCredential(ctx context.Context, room, identity string, mode types.CapabilityMode) (*types.Credential, error) {
	key := types.SessionKey{Room: room, Identity: identity, Mode: mode}.String()
	if cred, ok := g.cache.Get(key); ok && cred.ValidFor(g.buffer) {
		return cred, nil
	}

	v, err, _ := g.group.Do(key, func() (interface{}, error) {
		cred, err := g.upstream.IssueJoinCredential(ctx, room, identity, mode)
		if err != nil {
			return nil, err
		}
		if !cred.ExpiresAt.IsZero() {
			g.cache.Add(key, cred)
		}
		return cred, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.Credential), nil
}

// Invalidate drops any cached credential for the key.
func (g *CachingGateway) Invalidate(room, identity string, mode types.CapabilityMode) {
	g.cache.Remove(types.SessionKey{Room: room, Identity: identity, Mode: mode}.String())
}
