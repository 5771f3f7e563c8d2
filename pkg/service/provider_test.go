package service

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func redisClient(t *testing.T) *redis.Client {
	rc := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	if err := rc.Ping(context.Background()).Err(); err != nil {
		_ = rc.Close()
		t.Skip("redis not available:", err)
	}
	t.Cleanup(func() { _ = rc.Close() })
	return rc
}

func TestRedisBasedKeyProvider(t *testing.T) {
	ctx := context.Background()
	client := redisClient(t)

	hashKey := "stage_test_keys"
	apiKey := "APIBPMGhNnNKPKZ"
	apiSecret := "cYrrbTnN0arXbfxrWGsoKC3kwcVgrZhP9aNMEkJ5RcT"

	require.NoError(t, client.HSet(ctx, hashKey, apiKey, apiSecret).Err())
	t.Cleanup(func() { client.Del(context.Background(), hashKey) })

	provider := NewRedisBasedKeyProvider(client, hashKey)
	require.Equal(t, apiSecret, provider.GetSecret(apiKey))
	require.Equal(t, "", provider.GetSecret("unknown"))
	require.Equal(t, 1, provider.NumKeys())
}
