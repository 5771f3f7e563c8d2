package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livekit-stage/pkg/auth"
)

func TestAPIVerifier(t *testing.T) {
	apiKey, secret := apiKeypair()
	token, err := auth.NewAccessToken(apiKey, secret).
		SetIdentity("alice").
		SetValidFor(time.Minute).
		AddGrant(&auth.VideoGrant{RoomJoin: true, Room: "stage"}).
		ToJWT()
	require.NoError(t, err)

	t.Run("malformed token", func(t *testing.T) {
		_, err := auth.ParseAPIToken("not-a-token")
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("cannot decode with incorrect key", func(t *testing.T) {
		v, err := auth.ParseAPIToken(token)
		require.NoError(t, err)
		require.Equal(t, apiKey, v.APIKey())
		require.Equal(t, "alice", v.Identity())

		_, err = v.Verify("")
		require.ErrorIs(t, err, auth.ErrKeysMissing)

		_, err = v.Verify("anothersecret")
		require.Error(t, err)
	})

	t.Run("key has expired", func(t *testing.T) {
		expired, err := auth.NewAccessToken(apiKey, secret).
			SetIdentity("alice").
			SetValidFor(time.Nanosecond).
			ToJWT()
		require.NoError(t, err)
		time.Sleep(1100 * time.Millisecond)

		v, err := auth.ParseAPIToken(expired)
		require.NoError(t, err)
		_, err = v.Verify(secret)
		require.Error(t, err)
	})

	t.Run("unexpired token is verified", func(t *testing.T) {
		v, err := auth.ParseAPIToken(token)
		require.NoError(t, err)

		grants, err := v.Verify(secret)
		require.NoError(t, err)
		require.Equal(t, "alice", grants.Identity())
		require.True(t, grants.CanJoin("stage"))
	})
}
