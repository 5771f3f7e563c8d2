package rtc_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/rtc"
	"github.com/livekit/livekit-stage/pkg/rtc/types"
	"github.com/livekit/livekit-stage/pkg/rtc/types/typesfakes"
)

const testTimeout = 2 * time.Second

type testEnv struct {
	coordinator *rtc.Coordinator
	gateway     *typesfakes.FakeCredentialGateway
	factory     *typesfakes.FakeTransportFactory
	devices     *typesfakes.FakeMediaDevices

	lock       sync.Mutex
	transports []*typesfakes.FakeRoomTransport
	handlers   []func(types.TransportEvent)
	// applied to every new transport
	setup func(tr *typesfakes.FakeRoomTransport)
}

func newTestEnv(t *testing.T, conf config.SessionConfig, setup func(tr *typesfakes.FakeRoomTransport)) *testEnv {
	env := &testEnv{
		gateway: &typesfakes.FakeCredentialGateway{},
		factory: &typesfakes.FakeTransportFactory{},
		devices: &typesfakes.FakeMediaDevices{},
		setup:   setup,
	}
	env.gateway.IssueJoinCredentialStub = func(_ context.Context, room, identity string, mode types.CapabilityMode) (*types.Credential, error) {
		return &types.Credential{
			Token:     "token-" + identity,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil
	}
	env.factory.OpenStub = func(room string) (types.RoomTransport, error) {
		tr := &typesfakes.FakeRoomTransport{}
		idx := 0
		env.lock.Lock()
		env.transports = append(env.transports, tr)
		env.handlers = append(env.handlers, nil)
		idx = len(env.transports) - 1
		env.lock.Unlock()

		tr.OnEventStub = func(f func(event types.TransportEvent)) {
			env.lock.Lock()
			env.handlers[idx] = f
			env.lock.Unlock()
		}
		tr.LocalParticipantReturns(&types.ParticipantInfo{SID: "PA_local", Identity: "local"})
		tr.PublishTrackStub = func(_ context.Context, track types.LocalTrack) (*types.TrackInfo, error) {
			return &types.TrackInfo{SID: "TR_" + track.ID(), Kind: track.Kind()}, nil
		}
		if env.setup != nil {
			env.setup(tr)
		}
		return tr, nil
	}
	env.devices.CaptureVideoStub = func(context.Context, types.VideoOptions) (types.LocalTrack, error) {
		return newTrack("camera", types.TrackKindVideo), nil
	}
	env.devices.CaptureAudioStub = func(context.Context, types.AudioOptions) (types.LocalTrack, error) {
		return newTrack("mic", types.TrackKindAudio), nil
	}

	if conf.ConnectTimeout == 0 {
		conf.ConnectTimeout = testTimeout
	}
	if conf.PublishTimeout == 0 {
		conf.PublishTimeout = testTimeout
	}
	env.coordinator = rtc.NewCoordinator(rtc.CoordinatorParams{
		Config:     conf,
		Gateway:    env.gateway,
		Transports: env.factory,
		Devices:    env.devices,
	})
	t.Cleanup(func() {
		env.coordinator.Close()
		env.coordinator.Bus().Close()
	})
	return env
}

func (e *testEnv) transport(i int) *typesfakes.FakeRoomTransport {
	e.lock.Lock()
	defer e.lock.Unlock()

	if i >= len(e.transports) {
		return nil
	}
	return e.transports[i]
}

func (e *testEnv) emit(i int, event types.TransportEvent) {
	e.lock.Lock()
	f := e.handlers[i]
	e.lock.Unlock()
	f(event)
}

func (e *testEnv) connect(t *testing.T, room, identity string, mode types.CapabilityMode) {
	require.True(t, e.coordinator.Connect(context.Background(), room, identity, mode, rtc.ConnectOptions{}))
	require.Equal(t, types.StateConnected, e.coordinator.State())
}

func newTrack(id string, kind types.TrackKind) *typesfakes.FakeLocalTrack {
	track := &typesfakes.FakeLocalTrack{}
	track.IDReturns(id)
	track.KindReturns(kind)
	track.IsLiveReturns(true)
	return track
}

func flush(t *testing.T, bus *rtc.EventBus) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	require.NoError(t, bus.Flush(ctx))
}
