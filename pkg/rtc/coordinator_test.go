package rtc_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/livekit/livekit-stage/pkg/auth"
	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/rtc"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
	"github.com/livekit/livekit-stage/pkg/rtc/types/typesfakes"
)

func TestConnectSingleFlight(t *testing.T) {
	release := make(chan struct{})
	env := newTestEnv(t, config.SessionConfig{}, func(tr *typesfakes.FakeRoomTransport) {
		tr.ConnectStub = func(ctx context.Context, _ string, _ string) error {
			select {
			case <-release:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	first := make(chan bool, 1)
	go func() {
		first <- env.coordinator.Connect(context.Background(), "stage", "alice", types.CapabilityViewer, rtc.ConnectOptions{})
	}()
	require.Eventually(t, func() bool {
		tr := env.transport(0)
		return tr != nil && tr.ConnectCallCount() == 1
	}, testTimeout, 5*time.Millisecond)
	require.Equal(t, types.StateConnecting, env.coordinator.State())

	// a second connect during the first returns false right away, whatever its key
	require.False(t, env.coordinator.Connect(context.Background(), "stage", "alice", types.CapabilityViewer, rtc.ConnectOptions{}))
	require.False(t, env.coordinator.Connect(context.Background(), "other", "alice", types.CapabilityPublisher, rtc.ConnectOptions{}))

	close(release)
	require.True(t, <-first)
	require.Equal(t, types.StateConnected, env.coordinator.State())
	require.Equal(t, 1, env.gateway.IssueJoinCredentialCallCount())
	require.Equal(t, 1, env.factory.OpenCallCount())
}

func TestConnectIdempotent(t *testing.T) {
	env := newTestEnv(t, config.SessionConfig{}, nil)

	env.connect(t, "stage", "alice", types.CapabilityViewer)
	env.connect(t, "stage", "alice", types.CapabilityViewer)

	require.Equal(t, 1, env.gateway.IssueJoinCredentialCallCount())
	require.Equal(t, 1, env.factory.OpenCallCount())
	require.Equal(t, 0, env.transport(0).DisconnectCallCount())

	key, ok := env.coordinator.Session()
	require.True(t, ok)
	require.Equal(t, types.SessionKey{Room: "stage", Identity: "alice", Mode: types.CapabilityViewer}, key)

	_, _, token := env.transport(0).ConnectArgsForCall(0)
	require.Equal(t, "token-alice", token)
}

func TestConnectSupersedes(t *testing.T) {
	env := newTestEnv(t, config.SessionConfig{}, nil)
	var disconnected []types.SessionKey
	var lock sync.Mutex
	env.coordinator.OnDisconnected(func(key types.SessionKey) {
		lock.Lock()
		disconnected = append(disconnected, key)
		lock.Unlock()
	})

	env.connect(t, "stage", "alice", types.CapabilityViewer)
	env.connect(t, "stage", "alice", types.CapabilityPublisher)

	require.Equal(t, 2, env.factory.OpenCallCount())
	require.Equal(t, 1, env.transport(0).DisconnectCallCount())
	require.Equal(t, 0, env.transport(1).DisconnectCallCount())

	key, _ := env.coordinator.Session()
	require.Equal(t, types.CapabilityPublisher, key.Mode)

	require.Eventually(t, func() bool {
		lock.Lock()
		defer lock.Unlock()
		return len(disconnected) == 1 && disconnected[0].Mode == types.CapabilityViewer
	}, testTimeout, 5*time.Millisecond)

	// events from the replaced transport no longer reach the view
	env.emit(0, types.TransportEvent{
		Kind:        types.EventParticipantJoined,
		Participant: &types.ParticipantInfo{Identity: "ghost"},
	})
	env.emit(1, types.TransportEvent{
		Kind:        types.EventParticipantJoined,
		Participant: &types.ParticipantInfo{Identity: "bob"},
	})
	flush(t, env.coordinator.Bus())
	require.Nil(t, env.coordinator.Bus().Participant("ghost"))
	require.NotNil(t, env.coordinator.Bus().Participant("bob"))
}

func TestConnectPreconditionFailure(t *testing.T) {
	for _, cause := range []error{auth.ErrNoAuthContext, auth.ErrUnauthenticated, auth.ErrUnauthorized, errors.New("gateway unreachable")} {
		t.Run(cause.Error(), func(t *testing.T) {
			env := newTestEnv(t, config.SessionConfig{}, nil)
			env.gateway.IssueJoinCredentialReturns(nil, cause)
			var errorCalls atomic.Int32
			env.coordinator.OnError(func(types.SessionKey, error) { errorCalls.Inc() })

			require.False(t, env.coordinator.Connect(context.Background(), "stage", "alice", types.CapabilityViewer, rtc.ConnectOptions{}))
			require.Equal(t, types.StateIdle, env.coordinator.State())
			require.NoError(t, env.coordinator.LastError())
			require.Equal(t, 0, env.factory.OpenCallCount())

			time.Sleep(20 * time.Millisecond)
			require.Equal(t, int32(0), errorCalls.Load())
		})
	}

	t.Run("empty credential", func(t *testing.T) {
		env := newTestEnv(t, config.SessionConfig{}, nil)
		env.gateway.IssueJoinCredentialReturns(&types.Credential{}, nil)

		require.False(t, env.coordinator.Connect(context.Background(), "stage", "alice", types.CapabilityViewer, rtc.ConnectOptions{}))
		require.Equal(t, types.StateIdle, env.coordinator.State())
		require.NoError(t, env.coordinator.LastError())
	})

	t.Run("missing identity", func(t *testing.T) {
		env := newTestEnv(t, config.SessionConfig{}, nil)
		require.False(t, env.coordinator.Connect(context.Background(), "stage", "", types.CapabilityViewer, rtc.ConnectOptions{}))
		require.Equal(t, 0, env.gateway.IssueJoinCredentialCallCount())
	})
}

func TestConnectTransportFailure(t *testing.T) {
	env := newTestEnv(t, config.SessionConfig{}, func(tr *typesfakes.FakeRoomTransport) {
		tr.ConnectReturns(errors.New("ice failed"))
	})

	var lock sync.Mutex
	var states []types.ConnectionState
	var errs []error
	env.coordinator.OnStateChanged(func(state types.ConnectionState) {
		lock.Lock()
		states = append(states, state)
		lock.Unlock()
	})
	env.coordinator.OnError(func(_ types.SessionKey, err error) {
		lock.Lock()
		errs = append(errs, err)
		lock.Unlock()
	})

	require.False(t, env.coordinator.Connect(context.Background(), "stage", "alice", types.CapabilityViewer, rtc.ConnectOptions{}))
	require.Equal(t, types.StateIdle, env.coordinator.State())
	require.ErrorIs(t, env.coordinator.LastError(), rtc.ErrTransport)
	require.Equal(t, 1, env.transport(0).DisconnectCallCount())

	require.Eventually(t, func() bool {
		lock.Lock()
		defer lock.Unlock()
		return len(errs) == 1 && len(states) == 3
	}, testTimeout, 5*time.Millisecond)
	require.Equal(t, []types.ConnectionState{types.StateConnecting, types.StateFailed, types.StateIdle}, states)
	require.ErrorIs(t, errs[0], rtc.ErrTransport)
}

func TestConnectTimeout(t *testing.T) {
	env := newTestEnv(t, config.SessionConfig{}, func(tr *typesfakes.FakeRoomTransport) {
		tr.ConnectStub = func(ctx context.Context, _ string, _ string) error {
			<-ctx.Done()
			return ctx.Err()
		}
	})

	start := time.Now()
	require.False(t, env.coordinator.Connect(context.Background(), "stage", "alice", types.CapabilityViewer, rtc.ConnectOptions{
		Timeout: 50 * time.Millisecond,
	}))
	require.Less(t, time.Since(start), time.Second)
	require.Equal(t, types.StateIdle, env.coordinator.State())
	require.ErrorIs(t, env.coordinator.LastError(), rtc.ErrTransport)

	// the single-flight lock was released
	env.setup = nil
	env.connect(t, "stage", "alice", types.CapabilityViewer)
}

func TestDisconnect(t *testing.T) {
	env := newTestEnv(t, config.SessionConfig{}, nil)

	// nothing to disconnect
	require.True(t, env.coordinator.Disconnect())

	env.connect(t, "stage", "alice", types.CapabilityViewer)
	require.True(t, env.coordinator.Disconnect())
	require.Equal(t, types.StateIdle, env.coordinator.State())
	require.Equal(t, 1, env.transport(0).DisconnectCallCount())

	_, ok := env.coordinator.Session()
	require.False(t, ok)

	require.True(t, env.coordinator.Disconnect())
	require.Equal(t, 1, env.transport(0).DisconnectCallCount())
}

func TestDisconnectWhileConnecting(t *testing.T) {
	env := newTestEnv(t, config.SessionConfig{}, func(tr *typesfakes.FakeRoomTransport) {
		tr.ConnectStub = func(ctx context.Context, _ string, _ string) error {
			<-ctx.Done()
			return ctx.Err()
		}
	})
	var errorCalls atomic.Int32
	env.coordinator.OnError(func(types.SessionKey, error) { errorCalls.Inc() })

	result := make(chan bool, 1)
	go func() {
		result <- env.coordinator.Connect(context.Background(), "stage", "alice", types.CapabilityViewer, rtc.ConnectOptions{})
	}()
	require.Eventually(t, func() bool {
		tr := env.transport(0)
		return tr != nil && tr.ConnectCallCount() == 1
	}, testTimeout, 5*time.Millisecond)

	require.True(t, env.coordinator.Disconnect())
	require.False(t, <-result)
	require.Equal(t, types.StateIdle, env.coordinator.State())
	require.NoError(t, env.coordinator.LastError())
	require.Equal(t, int32(0), errorCalls.Load())
}

func TestRemoteDisconnect(t *testing.T) {
	env := newTestEnv(t, config.SessionConfig{}, nil)
	var disconnected atomic.Int32
	env.coordinator.OnDisconnected(func(types.SessionKey) { disconnected.Inc() })

	env.connect(t, "stage", "alice", types.CapabilityViewer)
	env.emit(0, types.TransportEvent{Kind: types.EventDisconnected, Err: errors.New("server left")})

	require.Eventually(t, func() bool {
		return env.coordinator.State() == types.StateIdle && disconnected.Load() == 1
	}, testTimeout, 5*time.Millisecond)
	require.ErrorIs(t, env.coordinator.LastError(), rtc.ErrTransport)
}

func TestReconnect(t *testing.T) {
	env := newTestEnv(t, config.SessionConfig{}, nil)
	require.False(t, env.coordinator.Reconnect(context.Background()))

	env.connect(t, "stage", "alice", types.CapabilityViewer)
	require.True(t, env.coordinator.Reconnect(context.Background()))
	require.Equal(t, types.StateConnected, env.coordinator.State())
	require.Equal(t, 2, env.factory.OpenCallCount())
	require.Equal(t, 1, env.transport(0).DisconnectCallCount())
}

func TestCallbacksInOrder(t *testing.T) {
	env := newTestEnv(t, config.SessionConfig{}, nil)

	var lock sync.Mutex
	var events []string
	record := func(e string) {
		lock.Lock()
		events = append(events, e)
		lock.Unlock()
	}
	env.coordinator.OnStateChanged(func(state types.ConnectionState) { record(state.String()) })
	env.coordinator.OnConnected(func(types.SessionKey) { record("connected") })
	env.coordinator.OnDisconnected(func(types.SessionKey) { record("disconnected") })

	env.connect(t, "stage", "alice", types.CapabilityViewer)
	require.True(t, env.coordinator.Disconnect())

	expected := []string{"CONNECTING", "CONNECTED", "connected", "DISCONNECTING", "IDLE", "disconnected"}
	require.Eventually(t, func() bool {
		lock.Lock()
		defer lock.Unlock()
		return len(events) == len(expected)
	}, testTimeout, 5*time.Millisecond)
	require.Equal(t, expected, events)
}

func TestHydratesParticipants(t *testing.T) {
	env := newTestEnv(t, config.SessionConfig{}, func(tr *typesfakes.FakeRoomTransport) {
		tr.RemoteParticipantsReturns([]*types.ParticipantInfo{
			{Identity: "bob", Name: "Bob", Tracks: []types.TrackInfo{{SID: "TR_v", Kind: types.TrackKindVideo}}},
			{Identity: "carol"},
		})
	})
	env.connect(t, "stage", "alice", types.CapabilityViewer)
	flush(t, env.coordinator.Bus())

	participants := env.coordinator.Bus().Participants()
	require.Len(t, participants, 3)
	require.True(t, participants[0].IsLocal)
	require.Equal(t, "bob", participants[1].Identity)
	require.True(t, participants[1].CameraEnabled)
	require.Equal(t, "carol", participants[2].Identity)
}

func TestCloseStopsOwnedBus(t *testing.T) {
	t.Run("created bus is closed", func(t *testing.T) {
		c := rtc.NewCoordinator(rtc.CoordinatorParams{
			Gateway:    &typesfakes.FakeCredentialGateway{},
			Transports: &typesfakes.FakeTransportFactory{},
			Devices:    &typesfakes.FakeMediaDevices{},
		})
		bus := c.Bus()
		require.False(t, bus.IsClosed())
		c.Close()
		require.True(t, bus.IsClosed())
	})

	t.Run("injected bus is left running", func(t *testing.T) {
		bus := rtc.NewEventBus(rtc.EventBusParams{})
		defer bus.Close()
		c := rtc.NewCoordinator(rtc.CoordinatorParams{
			Bus:        bus,
			Gateway:    &typesfakes.FakeCredentialGateway{},
			Transports: &typesfakes.FakeTransportFactory{},
			Devices:    &typesfakes.FakeMediaDevices{},
		})
		c.Close()
		require.False(t, bus.IsClosed())
	})
}
