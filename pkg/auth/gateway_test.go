package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/livekit/livekit-stage/pkg/auth"
	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
	"github.com/livekit/livekit-stage/pkg/rtc/types/typesfakes"
)

func newGatewayServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	calls := atomic.NewInt32(0)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Inc()
		require.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		req := &auth.TokenRequest{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(req))

		apiKey, secret := apiKeypair()
		mode, _ := types.ParseCapabilityMode(req.Mode)
		token, err := auth.NewAccessToken(apiKey, secret).
			SetIdentity(req.Identity).
			SetValidFor(time.Hour).
			AddGrant(auth.JoinGrant(req.Room, mode)).
			ToJWT()
		require.NoError(t, err)
		_ = json.NewEncoder(w).Encode(&auth.TokenResponse{Token: token})
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func TestHTTPGateway(t *testing.T) {
	conf := config.DefaultConfig.Credentials

	t.Run("issues credential", func(t *testing.T) {
		srv, _ := newGatewayServer(t, http.StatusOK)
		conf.GatewayURL = srv.URL
		g := auth.NewHTTPGateway(conf, auth.StaticAuthSource("user-token"))

		cred, err := g.IssueJoinCredential(context.Background(), "stage", "alice", types.CapabilityPublisher)
		require.NoError(t, err)
		require.NotEmpty(t, cred.Token)
		require.WithinDuration(t, time.Now().Add(time.Hour), cred.ExpiresAt, 2*time.Second)
		require.True(t, cred.ValidFor(time.Minute))
	})

	t.Run("no auth context", func(t *testing.T) {
		srv, calls := newGatewayServer(t, http.StatusOK)
		conf.GatewayURL = srv.URL
		g := auth.NewHTTPGateway(conf, auth.StaticAuthSource(""))

		_, err := g.IssueJoinCredential(context.Background(), "stage", "alice", types.CapabilityViewer)
		require.ErrorIs(t, err, auth.ErrNoAuthContext)
		require.Equal(t, int32(0), calls.Load())
	})

	t.Run("maps rejections", func(t *testing.T) {
		for status, expected := range map[int]error{
			http.StatusUnauthorized: auth.ErrUnauthenticated,
			http.StatusForbidden:    auth.ErrUnauthorized,
		} {
			srv, _ := newGatewayServer(t, status)
			conf.GatewayURL = srv.URL
			g := auth.NewHTTPGateway(conf, auth.StaticAuthSource("user-token"))

			_, err := g.IssueJoinCredential(context.Background(), "stage", "alice", types.CapabilityViewer)
			require.ErrorIs(t, err, expected)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		conf.GatewayURL = ""
		g := auth.NewHTTPGateway(conf, auth.StaticAuthSource("user-token"))
		_, err := g.IssueJoinCredential(context.Background(), "stage", "alice", types.CapabilityViewer)
		require.ErrorIs(t, err, auth.ErrGatewayNotSet)
	})
}

func TestLocalGateway(t *testing.T) {
	apiKey, secret := apiKeypair()
	g := auth.NewLocalGateway(apiKey, secret, time.Minute, "ws://localhost:7880")

	cred, err := g.IssueJoinCredential(context.Background(), "stage", "bob", types.CapabilityViewer)
	require.NoError(t, err)
	require.Equal(t, "ws://localhost:7880", cred.ServerURL)

	v, err := auth.ParseAPIToken(cred.Token)
	require.NoError(t, err)
	grants, err := v.Verify(secret)
	require.NoError(t, err)
	require.True(t, grants.CanJoin("stage"))
	require.False(t, grants.Video.CanPublish)
	require.True(t, grants.Video.CanSubscribe)

	_, err = g.IssueJoinCredential(context.Background(), "stage", "", types.CapabilityViewer)
	require.ErrorIs(t, err, auth.ErrNoAuthContext)
}

func TestCachingGateway(t *testing.T) {
	t.Run("reuses credentials until the buffer", func(t *testing.T) {
		upstream := &typesfakes.FakeCredentialGateway{}
		upstream.IssueJoinCredentialReturns(&types.Credential{
			Token:     "t1",
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
		g := auth.NewCachingGateway(upstream, 4, time.Minute)

		for i := 0; i < 3; i++ {
			cred, err := g.IssueJoinCredential(context.Background(), "stage", "alice", types.CapabilityViewer)
			require.NoError(t, err)
			require.Equal(t, "t1", cred.Token)
		}
		require.Equal(t, 1, upstream.IssueJoinCredentialCallCount())

		// a different mode is a different key
		_, err := g.IssueJoinCredential(context.Background(), "stage", "alice", types.CapabilityPublisher)
		require.NoError(t, err)
		require.Equal(t, 2, upstream.IssueJoinCredentialCallCount())

		g.Invalidate("stage", "alice", types.CapabilityViewer)
		_, err = g.IssueJoinCredential(context.Background(), "stage", "alice", types.CapabilityViewer)
		require.NoError(t, err)
		require.Equal(t, 3, upstream.IssueJoinCredentialCallCount())
	})

	t.Run("refreshes near expiry", func(t *testing.T) {
		upstream := &typesfakes.FakeCredentialGateway{}
		upstream.IssueJoinCredentialReturns(&types.Credential{
			Token:     "short",
			ExpiresAt: time.Now().Add(30 * time.Second),
		}, nil)
		g := auth.NewCachingGateway(upstream, 4, time.Minute)

		_, err := g.IssueJoinCredential(context.Background(), "stage", "alice", types.CapabilityViewer)
		require.NoError(t, err)
		_, err = g.IssueJoinCredential(context.Background(), "stage", "alice", types.CapabilityViewer)
		require.NoError(t, err)
		require.Equal(t, 2, upstream.IssueJoinCredentialCallCount())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		upstream := &typesfakes.FakeCredentialGateway{}
		upstream.IssueJoinCredentialReturns(nil, auth.ErrUnauthorized)
		g := auth.NewCachingGateway(upstream, 4, time.Minute)

		_, err := g.IssueJoinCredential(context.Background(), "stage", "alice", types.CapabilityViewer)
		require.ErrorIs(t, err, auth.ErrUnauthorized)
		_, err = g.IssueJoinCredential(context.Background(), "stage", "alice", types.CapabilityViewer)
		require.ErrorIs(t, err, auth.ErrUnauthorized)
		require.Equal(t, 2, upstream.IssueJoinCredentialCallCount())
	})

	t.Run("coalesces concurrent fetches", func(t *testing.T) {
		release := make(chan struct{})
		upstream := &typesfakes.FakeCredentialGateway{}
		upstream.IssueJoinCredentialStub = func(context.Context, string, string, types.CapabilityMode) (*types.Credential, error) {
			<-release
			return &types.Credential{Token: "t", ExpiresAt: time.Now().Add(time.Hour)}, nil
		}
		g := auth.NewCachingGateway(upstream, 4, time.Minute)

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := g.IssueJoinCredential(context.Background(), "stage", "alice", types.CapabilityViewer)
				require.NoError(t, err)
			}()
		}
		require.Eventually(t, func() bool {
			return upstream.IssueJoinCredentialCallCount() == 1
		}, time.Second, 5*time.Millisecond)
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()
		require.LessOrEqual(t, upstream.IssueJoinCredentialCallCount(), 5)
	})
}
